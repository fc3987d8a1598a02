package api

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/xtding233/idle-balance/internal/balance"
	"github.com/xtding233/idle-balance/internal/series"
)

func notFound(err error) bool {
	return errors.Is(err, balance.ErrUnknownCategory) ||
		errors.Is(err, balance.ErrUnknownTier) ||
		errors.Is(err, series.ErrUnknownChart)
}

func httpStatus(err error) int {
	switch {
	case notFound(err):
		return http.StatusNotFound
	case errors.Is(err, balance.ErrDomain):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func grpcStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case notFound(err):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, balance.ErrDomain):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
