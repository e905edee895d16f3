package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewInfrastructureRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewInfrastructureRepository(pool)
	assert.NotNil(t, repo)
}
