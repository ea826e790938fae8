package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := &Config{
		Host:     "db",
		Port:     "5432",
		User:     "metalmarket",
		Password: "secret",
		DBName:   "catalog",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5432 user=metalmarket password=secret dbname=catalog sslmode=disable", cfg.DSN())
}
