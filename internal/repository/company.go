package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/job-board/internal/database"
	"github.com/deppfellow/job-board/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `id, name, location, email, password, description, logo`

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// ListCompanies returns every company ordered by name.
func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company

	err := database.WithConn(ctx, r.pool, func(q database.Querier) error {
		rows, err := q.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name, id`)
		if err != nil {
			return err
		}

		companies, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Company])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	return companies, nil
}

func (r *CompanyRepository) FindCompanyByID(ctx context.Context, id int64) (*model.Company, error) {
	return r.findOne(ctx, "id", id)
}

func (r *CompanyRepository) FindCompanyByName(ctx context.Context, name string) (*model.Company, error) {
	return r.findOne(ctx, "name", name)
}

func (r *CompanyRepository) FindCompanyByEmail(ctx context.Context, email string) (*model.Company, error) {
	return r.findOne(ctx, "email", email)
}

// findOne looks a company up by a unique column. column is always a
// constant supplied by this package.
func (r *CompanyRepository) findOne(ctx context.Context, column string, value any) (*model.Company, error) {
	var company *model.Company

	err := database.WithConn(ctx, r.pool, func(q database.Querier) error {
		rows, err := q.Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE `+column+` = $1`, value)
		if err != nil {
			return err
		}

		company, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Company])
		return err
	})
	if err != nil {
		return nil, translateError(err, "companies")
	}

	return company, nil
}

// CreateCompany inserts a company and returns the stored row. A taken name
// or email comes back as a *ConflictError.
func (r *CompanyRepository) CreateCompany(ctx context.Context, in model.NewCompany) (*model.Company, error) {
	return r.returningOne(ctx, `
		INSERT INTO companies (name, location, email, password, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		in.Name, in.Location, in.Email, in.PasswordHash, in.Description,
	)
}

// UpdateCompanyProfile overwrites name, location and description.
func (r *CompanyRepository) UpdateCompanyProfile(ctx context.Context, id int64, profile model.CompanyProfile) (*model.Company, error) {
	return r.returningOne(ctx, `
		UPDATE companies
		SET name = $2, location = $3, description = $4
		WHERE id = $1
		RETURNING `+companyColumns,
		id, profile.Name, profile.Location, profile.Description,
	)
}

// UpdateCompanyLogo overwrites the stored logo file name.
func (r *CompanyRepository) UpdateCompanyLogo(ctx context.Context, id int64, logo string) (*model.Company, error) {
	return r.returningOne(ctx, `
		UPDATE companies
		SET logo = $2
		WHERE id = $1
		RETURNING `+companyColumns,
		id, logo,
	)
}

func (r *CompanyRepository) returningOne(ctx context.Context, sql string, args ...any) (*model.Company, error) {
	var company *model.Company

	err := database.WithConn(ctx, r.pool, func(q database.Querier) error {
		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			return err
		}

		company, err = pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Company])
		return err
	})
	if err != nil {
		return nil, translateError(err, "companies")
	}

	return company, nil
}

// ListCompanyNames returns every registered company name.
func (r *CompanyRepository) ListCompanyNames(ctx context.Context) ([]string, error) {
	return r.listColumn(ctx, `SELECT name FROM companies ORDER BY name`)
}

// ListCompanyEmails returns every registered company email.
func (r *CompanyRepository) ListCompanyEmails(ctx context.Context) ([]string, error) {
	return r.listColumn(ctx, `SELECT email FROM companies ORDER BY email`)
}

func (r *CompanyRepository) listColumn(ctx context.Context, sql string) ([]string, error) {
	var values []string

	err := database.WithConn(ctx, r.pool, func(q database.Querier) error {
		rows, err := q.Query(ctx, sql)
		if err != nil {
			return err
		}

		values, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list companies column: %w", err)
	}

	return values, nil
}
