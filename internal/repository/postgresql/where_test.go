package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.where())

	w.add("a.work_date BETWEEN %s AND %s", "2024-11-01", "2024-11-30")
	w.add("(u.full_name ILIKE %s OR u.email ILIKE %s)", "%x'; DROP TABLE user_account; --%", "%x%")
	limit := w.next(20)

	assert.Equal(t, " WHERE a.work_date BETWEEN $1 AND $2 AND (u.full_name ILIKE $3 OR u.email ILIKE $4)", w.where())
	assert.Equal(t, "$5", limit)
	assert.Len(t, w.args, 5)
	assert.Equal(t, "%x'; DROP TABLE user_account; --%", w.args[2])
}
