package sqlite

// createProducts holds one row per record. position keeps the catalog order,
// since ids alone do not (sorting reorders records in place).
const createProducts = `CREATE TABLE IF NOT EXISTS products (
    position INTEGER PRIMARY KEY,
    id INTEGER NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    price TEXT NOT NULL,
    quantity INTEGER NOT NULL
);`

const (
	countProductsTable = `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'products'`
	selectProducts = `SELECT id, name, category, price, quantity FROM products ORDER BY position`
	deleteProducts = `DELETE FROM products`
	insertProduct  = `INSERT INTO products (position, id, name, category, price, quantity) VALUES (?, ?, ?, ?, ?, ?)`
)
