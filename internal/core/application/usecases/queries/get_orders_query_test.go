package queries_test

import (
	"testing"

	"orderintegration/internal/core/application/usecases/queries"
	"orderintegration/internal/core/domain/model/order"
	"orderintegration/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery_Defaults(t *testing.T) {
	query, err := queries.NewGetOrdersQuery(queries.GetOrdersFilter{}, 0, 0)
	require.NoError(t, err)

	assert.NoError(t, query.Validate())
	assert.Equal(t, 1, query.Page())
	assert.Equal(t, 20, query.PageSize())
}

func TestNewGetOrdersQuery_WithFilter(t *testing.T) {
	filter := queries.GetOrdersFilter{Status: order.Prepared, CustomerCode: "CUST-7"}
	query, err := queries.NewGetOrdersQuery(filter, 2, 50)
	require.NoError(t, err)

	assert.Equal(t, filter, query.Filter())
	assert.Equal(t, 2, query.Page())
	assert.Equal(t, 50, query.PageSize())
}

func TestNewGetOrdersQuery_InvalidStatus(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(queries.GetOrdersFilter{Status: order.Status(99)}, 1, 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewGetOrdersQuery_PageSizeOutOfRange(t *testing.T) {
	_, err := queries.NewGetOrdersQuery(queries.GetOrdersFilter{}, 1, 101)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetOrdersQuery(queries.GetOrdersFilter{}, -1, 20)
	require.Error(t, err)
}

func TestGetOrdersQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetOrdersQuery
	assert.ErrorIs(t, query.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)
}
