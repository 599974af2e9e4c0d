//go:build unit || !integration

package registry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fedcompute-project/fedcompute/pkg/logger"
)

var testLayout = Layout{
	Endpoint: "GetWidgets",
	Columns:  []string{"id", "name", "enabled", "validfrom"},
}

func TestBindRejectsWrongColumnCount(t *testing.T) {
	logger.ConfigureTestLogging(t)

	_, err := testLayout.Bind(Row{"only", "three", "columns"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "GetWidgets")
}

func TestFieldsByName(t *testing.T) {
	logger.ConfigureTestLogging(t)

	id := uuid.NewString()
	fields, err := testLayout.Bind(Row{id, "widget-one", "1", "2023-04-01T10:30:00"})
	require.NoError(t, err)

	require.Equal(t, id, fields.UUID("id").String())
	require.Equal(t, "widget-one", fields.String("name"))
	require.True(t, fields.Bool("enabled"))
	require.Equal(t, time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC), fields.Time("validfrom"))
	require.NoError(t, fields.Err())
}

func TestBoolCoercion(t *testing.T) {
	logger.ConfigureTestLogging(t)

	// only the literal "1" means true on this wire
	for value, expected := range map[string]bool{
		"1":    true,
		"0":    false,
		"true": false,
		"yes":  false,
		"":     false,
	} {
		fields, err := testLayout.Bind(Row{"", "", value, ""})
		require.NoError(t, err)
		require.Equal(t, expected, fields.Bool("enabled"), "value %q", value)
	}
}

func TestTimeLayouts(t *testing.T) {
	logger.ConfigureTestLogging(t)

	expected := time.Date(2023, 4, 1, 10, 30, 0, 0, time.UTC)
	for _, value := range []string{
		"2023-04-01T10:30:00Z",
		"2023-04-01T10:30:00",
		"2023-04-01 10:30:00",
		"4/1/2023 10:30:00 AM",
	} {
		fields, err := testLayout.Bind(Row{"", "", "", value})
		require.NoError(t, err)
		require.Equal(t, expected, fields.Time("validfrom"), "value %q", value)
		require.NoError(t, fields.Err())
	}
}

func TestEmptyColumnsParseToZeroValues(t *testing.T) {
	logger.ConfigureTestLogging(t)

	fields, err := testLayout.Bind(Row{"", "", "", ""})
	require.NoError(t, err)
	require.Equal(t, uuid.Nil, fields.UUID("id"))
	require.True(t, fields.Time("validfrom").IsZero())
	require.NoError(t, fields.Err())
}

func TestParseFailuresAccumulate(t *testing.T) {
	logger.ConfigureTestLogging(t)

	fields, err := testLayout.Bind(Row{"not-a-uuid", "", "", "not-a-time"})
	require.NoError(t, err)

	// reads still return zero values after a failure
	require.Equal(t, uuid.Nil, fields.UUID("id"))
	require.True(t, fields.Time("validfrom").IsZero())

	err = fields.Err()
	require.Error(t, err)
	require.Contains(t, err.Error(), "id")
}

func TestUnknownFieldNameFailsErr(t *testing.T) {
	logger.ConfigureTestLogging(t)

	fields, err := testLayout.Bind(Row{"", "", "", ""})
	require.NoError(t, err)
	require.Equal(t, "", fields.String("no-such-field"))
	require.Error(t, fields.Err())
}
