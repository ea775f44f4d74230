package user

const (
	userColumns = `id, email, first_name, last_name, birth_date, address, phone_number, created_at, updated_at`

	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	ExistsUserByEmail = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	InsertUser        = `
		INSERT INTO users (email, first_name, last_name, birth_date, address, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	UpdateUserByID = `
		UPDATE users
		SET email = $1,
		    first_name = $2,
		    last_name = $3,
		    birth_date = $4,
		    address = $5,
		    phone_number = $6,
		    updated_at = now()
		WHERE id = $7
		RETURNING ` + userColumns
	SelectUsersByBirthDate = `
		SELECT ` + userColumns + `
		FROM users
		WHERE birth_date BETWEEN $1 AND $2
		ORDER BY birth_date, id
	`
	DeleteUserByID = `
		DELETE FROM users
		WHERE id = $1
		RETURNING ` + userColumns
)
