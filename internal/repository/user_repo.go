//go:generate mockgen -source=user_repo.go -destination=mocks/user_repo.go -package=mock_repository

package repository

import (
	"context"
	"strings"

	"github.com/senyabanana/freight-service/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, password_hash, full_name, phone, company, role, created_at`

// UserRepository - интерфейс для работы с пользователями.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PostgresUserRepository - реализация UserRepository для базы данных.
type PostgresUserRepository struct {
	DB *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser создаёт пользователя; email хранится в нижнем регистре.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.New().String()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	query := `INSERT INTO users (id, email, password_hash, full_name, phone, company, role)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING ` + userColumns
	var created models.User
	err := pgxscan.Get(ctx, r.DB, &created, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone, user.Company, user.Role)
	if err != nil {
		return nil, mapErr(err)
	}
	return &created, nil
}

// GetUserByEmail ищет пользователя по email.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := pgxscan.Get(ctx, r.DB, &user, query, strings.ToLower(strings.TrimSpace(email))); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

// GetUserByID ищет пользователя по id.
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := pgxscan.Get(ctx, r.DB, &user, query, id); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}
