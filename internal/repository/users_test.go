package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var operatorID = uuid.MustParse("6f1c2b7a-3d44-4f57-9a0e-2b1d5c8e7f90")

func operatorRow(email, role string) *stubRow {
	return &stubRow{scan: func(dest ...any) error {
		created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		*dest[0].(*uuid.UUID) = operatorID
		*dest[1].(*string) = email
		*dest[2].(*string) = "$2a$10$hash"
		*dest[3].(*string) = role
		*dest[4].(*time.Time) = created
		*dest[5].(*time.Time) = created
		return nil
	}}
}

func TestPGXUsersRepository_FindByEmailNormalizes(t *testing.T) {
	var gotArgs []any
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			if !strings.Contains(query, "WHERE email = $1") {
				t.Fatalf("expected exact match on stored email, got %s", query)
			}
			gotArgs = args
			return operatorRow("bd@ferreiracto.com", "admin")
		},
	}}

	user, err := repo.FindByEmail(context.Background(), "  BD@FerreiraCTO.com ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArgs[0] != "bd@ferreiracto.com" {
		t.Fatalf("expected lower-cased lookup, got %v", gotArgs[0])
	}
	if user.ID != operatorID || user.Role != "admin" {
		t.Fatalf("unexpected operator: %+v", user)
	}
}

func TestPGXUsersRepository_NotFound(t *testing.T) {
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}}

	if _, err := repo.FindByEmail(context.Background(), "missing@ferreiracto.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound by email, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), operatorID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound by id, got %v", err)
	}
}

func TestPGXUsersRepository_Create(t *testing.T) {
	tests := map[string]struct {
		scanErr  error
		wantDup  bool
		wantFail bool
	}{
		"created": {},
		"duplicate email": {
			scanErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			wantDup: true,
		},
		"other unique constraint": {
			scanErr:  &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"},
			wantFail: true,
		},
		"connection error": {
			scanErr:  errors.New("conn reset"),
			wantFail: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &PGXUsersRepository{pool: &stubPool{
				queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
					if args[0] != "new@ferreiracto.com" || args[2] != "user" {
						t.Fatalf("unexpected args: %v", args)
					}
					if tt.scanErr != nil {
						return &stubRow{scan: func(dest ...any) error { return tt.scanErr }}
					}
					return operatorRow("new@ferreiracto.com", "user")
				},
			}}

			user, err := repo.Create(context.Background(), "New@FerreiraCTO.com", "$2a$10$hash", "user")
			switch {
			case tt.wantDup:
				if !errors.Is(err, ErrEmailDuplicate) {
					t.Fatalf("expected ErrEmailDuplicate, got %v", err)
				}
			case tt.wantFail:
				if err == nil || errors.Is(err, ErrEmailDuplicate) {
					t.Fatalf("expected plain insert error, got %v", err)
				}
			default:
				if err != nil || user.Email != "new@ferreiracto.com" {
					t.Fatalf("unexpected result: %+v %v", user, err)
				}
			}
		})
	}
}
