package source

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/colcheck/internal/core"
)

// Query runs sql against db and loads the result set into a table.
// Numeric database values become numeric cells, NULL becomes missing and
// everything else is rendered as text.
func Query(ctx context.Context, db core.DBTX, sql string, args ...any) (*core.Table, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	builders := make([]*columnBuilder, len(fields))
	for i, fd := range fields {
		builders[i] = &columnBuilder{name: fd.Name}
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("query failed: scan row: %w", err)
		}
		for i, v := range values {
			appendPGValue(builders[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	return buildTable(builders)
}

func appendPGValue(b *columnBuilder, v any) {
	switch val := v.(type) {
	case nil:
		b.appendNull()
	case int16:
		b.appendNum(float64(val))
	case int32:
		b.appendNum(float64(val))
	case int64:
		b.appendNum(float64(val))
	case float32:
		b.appendNum(float64(val))
	case float64:
		b.appendNum(val)
	case pgtype.Numeric:
		appendPGNumeric(b, val)
	case string:
		b.appendText(val)
	case time.Time:
		b.appendText(val.Format(time.RFC3339Nano))
	case [16]byte:
		b.appendText(uuid.UUID(val).String())
	default:
		b.appendText(fmt.Sprint(val))
	}
}

func appendPGNumeric(b *columnBuilder, n pgtype.Numeric) {
	f, err := n.Float64Value()
	if err != nil {
		v, verr := n.Value()
		if verr != nil {
			b.appendNull()
			return
		}
		b.appendText(fmt.Sprint(v))
		return
	}
	if !f.Valid {
		b.appendNull()
		return
	}
	b.appendNum(f.Float64)
}
