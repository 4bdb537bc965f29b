package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

//go:embed schema.sql
var schemaSQL string

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Numeric columns travel as text so decimal scale survives the round trip.

func (s *PostgresStore) GetCostPolicy(ctx context.Context) (*CostPolicy, error) {
	var fixedCost, insurance, profit string
	p := &CostPolicy{}
	err := s.pool.QueryRow(ctx, `
		SELECT fixed_cost_per_person::text, insurance_rate::text, target_profit_rate::text, updated_at
		FROM valumetric_cost_policy WHERE id = 1`,
	).Scan(&fixedCost, &insurance, &profit, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.FixedCostPerPerson, err = decimal.NewFromString(fixedCost); err != nil {
		return nil, fmt.Errorf("decode fixed_cost_per_person: %w", err)
	}
	if p.InsuranceRate, err = decimal.NewFromString(insurance); err != nil {
		return nil, fmt.Errorf("decode insurance_rate: %w", err)
	}
	if p.TargetProfitRate, err = decimal.NewFromString(profit); err != nil {
		return nil, fmt.Errorf("decode target_profit_rate: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) SaveCostPolicy(ctx context.Context, p *CostPolicy) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO valumetric_cost_policy (id, fixed_cost_per_person, insurance_rate, target_profit_rate)
		VALUES (1, $1::numeric, $2::numeric, $3::numeric)
		ON CONFLICT (id) DO UPDATE SET
			fixed_cost_per_person = EXCLUDED.fixed_cost_per_person,
			insurance_rate = EXCLUDED.insurance_rate,
			target_profit_rate = EXCLUDED.target_profit_rate,
			updated_at = NOW()
		RETURNING updated_at`,
		p.FixedCostPerPerson.String(), p.InsuranceRate.String(), p.TargetProfitRate.String(),
	).Scan(&p.UpdatedAt)
}

const profileColumns = `id, source, method, criteria_names, weights,
	matrix_size, upper_triangle,
	lambda_max, consistency_index, consistency_ratio, is_consistent,
	created_at`

func (s *PostgresStore) SaveWeightProfile(ctx context.Context, p *WeightProfile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	upper := p.UpperTriangle
	if upper == nil {
		upper = []float64{}
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO valumetric_weight_profiles (id, source, method, criteria_names, weights,
			matrix_size, upper_triangle,
			lambda_max, consistency_index, consistency_ratio, is_consistent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`,
		p.ID, p.Source, p.Method, p.CriteriaNames, p.Weights,
		p.MatrixSize, upper,
		p.LambdaMax, p.ConsistencyIndex, p.ConsistencyRatio, p.Consistent,
	).Scan(&p.CreatedAt)
}

func (s *PostgresStore) GetCurrentWeightProfile(ctx context.Context) (*WeightProfile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM valumetric_weight_profiles
		ORDER BY created_at DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return firstProfile(rows)
}

func (s *PostgresStore) GetWeightProfile(ctx context.Context, id uuid.UUID) (*WeightProfile, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM valumetric_weight_profiles WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return firstProfile(rows)
}

func (s *PostgresStore) ListWeightProfiles(ctx context.Context, limit int) ([]*WeightProfile, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+profileColumns+`
		FROM valumetric_weight_profiles
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func firstProfile(rows pgx.Rows) (*WeightProfile, error) {
	profiles, err := scanProfiles(rows)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return profiles[0], nil
}

func scanProfiles(rows pgx.Rows) ([]*WeightProfile, error) {
	var profiles []*WeightProfile
	for rows.Next() {
		p := &WeightProfile{}
		var source string
		if err := rows.Scan(
			&p.ID, &source, &p.Method, &p.CriteriaNames, &p.Weights,
			&p.MatrixSize, &p.UpperTriangle,
			&p.LambdaMax, &p.ConsistencyIndex, &p.ConsistencyRatio, &p.Consistent,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.Source = ProfileSource(source)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
