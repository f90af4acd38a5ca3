package storage

import (
	"database/sql"
	"fmt"

	"cafe-pos/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) GetUserByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRow(
		"SELECT id, username, password FROM users WHERE username = $1",
		username).
		Scan(&user.ID, &user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUserByID(id int) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRow(
		"SELECT id, username, password FROM users WHERE id = $1",
		id).
		Scan(&user.ID, &user.Username, &user.Password)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateOrder writes the order row and every line item in one transaction.
// The parent row is inserted first so its generated id is available for the
// item rows; any failure rolls the whole order back.
func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`
		INSERT INTO orders (user_id, service_type, subtotal, tax, discount, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, order.UserID, order.ServiceType, order.Subtotal, order.Tax, order.Discount,
		order.Total, order.Status, order.CreatedAt).Scan(&order.ID); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, menu_item_id, quantity, price)
			VALUES ($1, $2, $3, $4)
		`, order.ID, item.MenuItemID, item.Quantity, item.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(orderID int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.QueryRow(`
		SELECT id, user_id, service_type, subtotal, tax, discount, total, status, created_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&order.ID, &order.UserID, &order.ServiceType, &order.Subtotal,
		&order.Tax, &order.Discount, &order.Total, &order.Status, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.orderItems(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *PostgresRepository) ListOrders(userID int) ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, service_type, subtotal, tax, discount, total, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.ServiceType, &order.Subtotal,
			&order.Tax, &order.Discount, &order.Total, &order.Status, &order.CreatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}

	for i := range orders {
		items, err := r.orderItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateOrder persists the merged scalar fields and, when replaceItems is
// set, deletes the existing line set and inserts order.Items in its place.
// Both happen in the same transaction so old and new lines never coexist.
func (r *PostgresRepository) UpdateOrder(order *domain.Order, replaceItems bool) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE orders
		SET service_type=$1, subtotal=$2, tax=$3, discount=$4, total=$5, status=$6
		WHERE id=$7
	`, order.ServiceType, order.Subtotal, order.Tax, order.Discount,
		order.Total, order.Status, order.ID); err != nil {
		return err
	}

	if replaceItems {
		if _, err := tx.Exec("DELETE FROM order_items WHERE order_id = $1", order.ID); err != nil {
			return err
		}
		for _, item := range order.Items {
			if _, err := tx.Exec(`
				INSERT INTO order_items (order_id, menu_item_id, quantity, price)
				VALUES ($1, $2, $3, $4)
			`, order.ID, item.MenuItemID, item.Quantity, item.Price); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// orderItems expands an order's lines with the live menu item name. The price
// comes from the order line, not the menu item: it is the snapshot captured
// when the order was written.
func (r *PostgresRepository) orderItems(orderID int) ([]domain.OrderItem, error) {
	rows, err := r.DB.Query(`
		SELECT oi.menu_item_id, m.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) CreateMenuItem(item *domain.MenuItem) error {
	return r.DB.QueryRow(`
		INSERT INTO menu_items (name, price, image, category, available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, item.Name, item.Price, item.Image, item.Category, item.Available).Scan(&item.ID)
}

func (r *PostgresRepository) ListMenuItems() ([]domain.MenuItem, error) {
	return r.scanMenuItems(`
		SELECT id, name, price, COALESCE(image, ''), category, available
		FROM menu_items
		ORDER BY id`)
}

func (r *PostgresRepository) ListMenuItemsByCategory(category string) ([]domain.MenuItem, error) {
	return r.scanMenuItems(`
		SELECT id, name, price, COALESCE(image, ''), category, available
		FROM menu_items
		WHERE category = $1
		ORDER BY id`, category)
}

func (r *PostgresRepository) scanMenuItems(query string, args ...interface{}) ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Image, &item.Category, &item.Available); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) GetMenuItem(id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRow(`
		SELECT id, name, price, COALESCE(image, ''), category, available
		FROM menu_items
		WHERE id = $1`, id).
		Scan(&item.ID, &item.Name, &item.Price, &item.Image, &item.Category, &item.Available)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) UpdateMenuItem(item *domain.MenuItem) error {
	_, err := r.DB.Exec(`
		UPDATE menu_items
		SET name=$1, price=$2, image=$3, category=$4, available=$5
		WHERE id=$6
	`, item.Name, item.Price, item.Image, item.Category, item.Available, item.ID)
	return err
}

func (r *PostgresRepository) DeleteMenuItem(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM menu_items WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListCategories() ([]string, error) {
	rows, err := r.DB.Query("SELECT DISTINCT category FROM menu_items ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *PostgresRepository) CreatePerson(person *domain.Person) error {
	return r.DB.QueryRow(`
		INSERT INTO persons (name, phone_number, place, date_visited)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, person.Name, person.PhoneNumber, person.Place, person.DateVisited).Scan(&person.ID)
}

func (r *PostgresRepository) ListPersons() ([]domain.Person, error) {
	return r.scanPersons(`
		SELECT id, name, phone_number, place, date_visited
		FROM persons
		ORDER BY id`)
}

func (r *PostgresRepository) SearchPersons(query string) ([]domain.Person, error) {
	return r.scanPersons(`
		SELECT id, name, phone_number, place, date_visited
		FROM persons
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id`, query)
}

func (r *PostgresRepository) scanPersons(query string, args ...interface{}) ([]domain.Person, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		var person domain.Person
		if err := rows.Scan(&person.ID, &person.Name, &person.PhoneNumber, &person.Place, &person.DateVisited); err != nil {
			continue
		}
		persons = append(persons, person)
	}
	return persons, nil
}

// EnsureSchema creates the tables when they are missing. Order items carry
// ON DELETE CASCADE against their order so removing an order can never leave
// orphaned lines behind.
func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(80) UNIQUE NOT NULL,
			password VARCHAR(200) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			image VARCHAR(200),
			category VARCHAR(50) NOT NULL,
			available BOOLEAN DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			service_type VARCHAR(50) NOT NULL,
			subtotal DOUBLE PRECISION DEFAULT 0,
			tax DOUBLE PRECISION DEFAULT 0,
			discount DOUBLE PRECISION DEFAULT 0,
			total DOUBLE PRECISION NOT NULL,
			status VARCHAR(20) DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			menu_item_id INTEGER NOT NULL REFERENCES menu_items(id),
			quantity INTEGER DEFAULT 1,
			price DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS persons (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			phone_number VARCHAR(20) NOT NULL,
			place VARCHAR(100) NOT NULL,
			date_visited TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedUsers provisions the default staff accounts on an empty users table.
func (r *PostgresRepository) SeedUsers() error {
	var count int
	if err := r.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := map[string]string{
		"admin": "admin123",
		"user":  "user123",
	}
	for username, password := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := r.DB.Exec(
			"INSERT INTO users (username, password) VALUES ($1, $2)",
			username, string(hash)); err != nil {
			return err
		}
	}
	return nil
}
