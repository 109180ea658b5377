package params

import (
	"strconv"

	"campus-recruit/core/constants"

	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int
	PageSize   int
}

func NewQueryParams(ctx echo.Context) *QueryParams {
	page := constants.DefaultPageNumber
	if p, err := strconv.Atoi(ctx.QueryParam("page")); err == nil && p > 0 {
		page = p
	}

	size := constants.DefaultPageSize
	if s, err := strconv.Atoi(ctx.QueryParam("limit")); err == nil && s > 0 {
		size = s
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}

	return &QueryParams{
		PageNumber: page,
		PageSize:   size,
	}
}
