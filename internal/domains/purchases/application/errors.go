package application

import (
	"errors"
	"fmt"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

func mapError(err error, bookID string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrOutOfStock) {
		return apperror.Wrap(apperror.KindOutOfStock, "Book is out of stock.", err)
	}
	if errors.Is(err, ports.ErrBookGone) {
		return apperror.Wrap(apperror.KindNotFound, fmt.Sprintf("Book with id: %s was not found.", bookID), err)
	}
	return err
}
