package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/bookhive/borrowing-engine-go/core"
)

// InsertUser persists a new user.
func (s *Store) InsertUser(ctx context.Context, user core.User) error {
	sqlQuery, _, buildErr := s.dialect().
		Insert(s.tables.Users).
		Rows(goqu.Record{
			colID:        user.ID.String(),
			colEmail:     user.Email,
			colFirstName: user.FirstName,
			colLastName:  user.LastName,
		}).
		ToSQL()
	if buildErr != nil {
		return s.buildQueryError(buildErr)
	}

	_, err := s.executeStatement(ctx, sqlQuery)

	return err
}

// UserByID loads one user, or core.ErrUserNotFound.
func (s *Store) UserByID(ctx context.Context, userID uuid.UUID) (core.User, error) {
	var empty core.User

	sqlQuery, _, buildErr := s.dialect().
		From(s.tables.Users).
		Select(colID, colEmail, colFirstName, colLastName).
		Where(goqu.C(colID).Eq(userID.String())).
		ToSQL()
	if buildErr != nil {
		return empty, s.buildQueryError(buildErr)
	}

	rows, queryErr := s.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer s.closeRows(rows)

	if !rows.Next() {
		return empty, core.ErrUserNotFound
	}

	var user core.User

	if scanErr := rows.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName); scanErr != nil {
		return empty, s.scanError(scanErr)
	}

	return user, nil
}
