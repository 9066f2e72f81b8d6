package application

import (
	"errors"
	"fmt"

	"github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
	"github.com/avalder/go-bookstore-api/internal/shared/validator"
)

func mapError(err error, id string) error {
	if err == nil {
		return nil
	}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return apperror.Wrap(apperror.KindInvalidArgument, ve.First, err)
	}
	if errors.Is(err, ports.ErrNotFound) {
		return apperror.Wrap(apperror.KindNotFound, fmt.Sprintf("Book with id: %s was not found.", id), err)
	}
	if errors.Is(err, ports.ErrOutOfStock) {
		return apperror.Wrap(apperror.KindOutOfStock, "Book is out of stock.", err)
	}
	return err
}
