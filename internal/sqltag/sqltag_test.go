package sqltag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sql  string
		want string
	}{
		{"select * from orders", "SELECT"},
		{"SELECT 1", "SELECT"},
		{"insert into orders (id) values (1)", "INSERT"},
		{"update orders set id = 1", "UPDATE"},
		{"delete from orders", "DELETE"},
		{"not valid sql at all (((", "SELECT"},
		{"", "SELECT"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Command(tt.sql), tt.sql)
	}
}
