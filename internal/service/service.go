// Package service holds the product review business logic: listing and
// aggregation over the catalog, reviews, wishlists and notifications.
package service

import (
	"fmt"

	apperrors "github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/errors"
	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/pagination"
)

// validatePage checks bounds and rejects sort fields that sortable does not
// accept. A nil sortable allows no sorting at all.
func validatePage(page pagination.Request, sortable func(string) bool) error {
	if err := page.Validate(pagination.MaxSize); err != nil {
		return err
	}
	for _, k := range page.Sort {
		if sortable == nil || !sortable(k.Field) {
			return apperrors.InvalidPagination(fmt.Sprintf("cannot sort by %q", k.Field))
		}
	}
	return nil
}
