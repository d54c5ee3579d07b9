package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/audiologapp/audiolog/internal/domain"
	"github.com/audiologapp/audiolog/internal/errors"
)

// personTable maps a role to its entity and junction tables. The three roles
// share one identity rule and differ only in where their rows live.
type personTable struct {
	table    string
	junction string
	fk       string
}

var personTables = map[domain.Role]personTable{
	domain.RoleAuthor:     {table: "authors", junction: "book_authors", fk: "author_id"},
	domain.RoleNarrator:   {table: "narrators", junction: "book_narrators", fk: "narrator_id"},
	domain.RoleTranslator: {table: "translators", junction: "book_translators", fk: "translator_id"},
}

func roleTable(role domain.Role) (personTable, error) {
	pt, ok := personTables[role]
	if !ok {
		return personTable{}, errors.Internalf("unknown person role %q", role)
	}
	return pt, nil
}

// SavePerson gets or creates a person row by the (surname, forename)
// identity pair and returns its id. Names are trimmed before matching; a
// NULL surname is matched with IS NULL. The forename must be non-empty.
func (q *Queries) SavePerson(ctx context.Context, role domain.Role, name domain.PersonName) (int64, error) {
	pt, err := roleTable(role)
	if err != nil {
		return 0, err
	}

	name = trimPersonName(name)
	if name.Forename == "" {
		return 0, errors.Validationf("the %s's forename must not be empty", role)
	}

	where, args := whereClause([]cond{
		eqString("surname", name.Surname),
		eq("forename", name.Forename),
	})

	var id int64
	err = q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s %s", pt.table, where), args...).Scan(&id)
	switch {
	case err == nil:
		q.logger.Debug("existing person", "role", role, "id", id)
		return id, nil
	case err != sql.ErrNoRows:
		return 0, fmt.Errorf("select %s: %w", pt.table, err)
	}

	res, err := q.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (surname, forename) VALUES (?, ?)", pt.table),
		nullString(name.Surname), name.Forename)
	if err != nil {
		return 0, wrapExecErr(err, "insert "+pt.table)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", pt.table, err)
	}
	q.logger.Debug("new person", "role", role, "id", id, "forename", name.Forename)
	return id, nil
}

// trimPersonName trims both components and converts a blank surname to NULL.
func trimPersonName(name domain.PersonName) domain.PersonName {
	name.Forename = strings.TrimSpace(name.Forename)
	if name.Surname != nil {
		s := strings.TrimSpace(*name.Surname)
		if s == "" {
			name.Surname = nil
		} else {
			name.Surname = &s
		}
	}
	return name
}

// LinkBookPerson gets or creates the junction row tying a book to a person.
func (q *Queries) LinkBookPerson(ctx context.Context, role domain.Role, bookID, personID int64) error {
	pt, err := roleTable(role)
	if err != nil {
		return err
	}

	var id int64
	err = q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id FROM %s WHERE book_id = ? AND %s = ?", pt.junction, pt.fk),
		bookID, personID).Scan(&id)
	switch {
	case err == nil:
		return nil
	case err != sql.ErrNoRows:
		return fmt.Errorf("select %s: %w", pt.junction, err)
	}

	_, err = q.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (book_id, %s) VALUES (?, ?)", pt.junction, pt.fk),
		bookID, personID)
	if err != nil {
		return wrapExecErr(err, "insert "+pt.junction)
	}
	q.logger.Debug("linked person to book", "role", role, "book_id", bookID, "person_id", personID)
	return nil
}

// GetPerson returns one person row by id.
func (q *Queries) GetPerson(ctx context.Context, role domain.Role, id int64) (*domain.Person, error) {
	pt, err := roleTable(role)
	if err != nil {
		return nil, err
	}

	var (
		p       domain.Person
		surname sql.NullString
	)
	err = q.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, surname, forename FROM %s WHERE id = ?", pt.table),
		id).Scan(&p.ID, &surname, &p.Forename)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("%s %d not found", role, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", pt.table, err)
	}
	p.Surname = stringPtr(surname)
	return &p, nil
}

// ListPersonsForBook returns the persons of one role linked to a book, in
// junction insertion order.
func (q *Queries) ListPersonsForBook(ctx context.Context, role domain.Role, bookID int64) ([]domain.Person, error) {
	pt, err := roleTable(role)
	if err != nil {
		return nil, err
	}

	rows, err := q.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT p.id, p.surname, p.forename
		FROM %s AS p
		INNER JOIN %s AS j ON j.%s = p.id
		WHERE j.book_id = ?
		ORDER BY j.id`, pt.table, pt.junction, pt.fk), bookID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", pt.junction, err)
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		var (
			p       domain.Person
			surname sql.NullString
		)
		if err := rows.Scan(&p.ID, &surname, &p.Forename); err != nil {
			return nil, fmt.Errorf("scan %s: %w", pt.table, err)
		}
		p.Surname = stringPtr(surname)
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return persons, nil
}

// ListPersonIDs returns every person id of one role.
func (q *Queries) ListPersonIDs(ctx context.Context, role domain.Role) ([]int64, error) {
	pt, err := roleTable(role)
	if err != nil {
		return nil, err
	}
	return q.listIDs(ctx, fmt.Sprintf("SELECT id FROM %s", pt.table))
}

// ListBookIDsForPerson returns the ids of the books linked to a person.
func (q *Queries) ListBookIDsForPerson(ctx context.Context, role domain.Role, personID int64) ([]int64, error) {
	pt, err := roleTable(role)
	if err != nil {
		return nil, err
	}
	return q.listIDs(ctx,
		fmt.Sprintf("SELECT book_id FROM %s WHERE %s = ?", pt.junction, pt.fk), personID)
}

// listIDs runs a single-column id query.
func (q *Queries) listIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return ids, nil
}
