package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/refindhq/refind/internal/database"
	"github.com/refindhq/refind/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, registration_number, department, email, password_hash, contact_number,
		created_at, updated_at, last_login`

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User

	err := scanner.Scan(
		&user.ID, &user.Name, &user.RegistrationNumber, &user.Department,
		&user.Email, &user.PasswordHash, &user.ContactNumber,
		&user.CreatedAt, &user.UpdatedAt, &user.LastLogin,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUserRow(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	return scanUserRow(r.db.Pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = uuid.New().String()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, name, registration_number, department, email, password_hash, contact_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns + `
	`

	return scanUserRow(r.db.Pool.QueryRow(ctx, query,
		user.ID, user.Name, user.RegistrationNumber, user.Department,
		user.Email, user.PasswordHash, user.ContactNumber,
		user.CreatedAt, user.UpdatedAt,
	))
}

// UpdateLastLogin stamps the user's last completed login. The dashboard
// only reads this; the login action is the sole writer.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE users SET last_login = $1, updated_at = $1 WHERE id = $2`

	result, err := r.db.Pool.Exec(ctx, query, at, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
