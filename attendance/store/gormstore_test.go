package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{
			name: "Deadlock",
			in:   &mysql.MySQLError{Number: 1213, Message: "Deadlock found"},
			want: ErrContention,
		},
		{
			name: "Lock wait timeout",
			in:   &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"},
			want: ErrContention,
		},
		{
			name: "Duplicate key from racing insert",
			in:   fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}),
			want: ErrContention,
		},
		{
			name: "Bad connection",
			in:   driver.ErrBadConn,
			want: ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.in), tt.want)
		})
	}
}

func TestTranslateErrorPassthrough(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("syntax error")
	got := translateError(plain)
	assert.Equal(t, plain, got)
	assert.NotErrorIs(t, got, ErrContention)
}

func TestKeyFor(t *testing.T) {
	at := time.Date(2025, time.March, 7, 8, 58, 0, 0, time.UTC)
	key := KeyFor("100001", at)

	assert.Equal(t, DayKey{EmployeeID: "100001", Year: 2025, Month: "marzo", Day: 7}, key)
}
