package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

var contactCols = []string{"id", "first_name", "last_name", "headline", "company", "industry", "location"}

func TestContactRepositoryGetByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM contacts WHERE id = ANY\(\$1\)`).
		WillReturnRows(sqlmock.NewRows(contactCols).
			AddRow("b", "Bruno", "Silva", nil, "HealthAI", "HealthTech", nil).
			AddRow("a", "Alice", "Nguyen", "VP", "FintechCo", "FinTech", "London, UK"))

	repo := &ContactRepository{DB: db}
	found, missing, err := repo.GetByIDs(context.Background(), []string{"a", "zz", "b"})
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "a", found[0].ID)
	assert.Equal(t, "b", found[1].ID)
	assert.Equal(t, "", found[1].Headline)
	assert.Equal(t, "", found[1].Location)
	assert.Equal(t, []string{"zz"}, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM contacts WHERE id = \$1`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(contactCols))

	_, err = (&ContactRepository{DB: db}).GetByID(context.Background(), "nobody")
	var notFound *appErrors.ErrContactNotFound
	assert.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepositoryUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO contacts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO contacts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = (&ContactRepository{DB: db}).Upsert(context.Background(), []model.Contact{
		{ID: "a", FirstName: "Alice", LastName: "Nguyen"},
		{ID: "b", FirstName: "Bruno", LastName: "Silva", Company: "HealthAI"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepositorySaveCopiesMessages(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO campaigns`).
		WithArgs("Launch", created).
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(int64(7)))
	copyIn := mock.ExpectPrepare(`COPY "campaign_messages"`)
	copyIn.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	copyIn.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	copyIn.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := &CampaignRepository{DB: db, Now: func() time.Time { return created }}
	id, err := repo.Save(context.Background(), "Launch", []model.ScheduledMessage{
		{ContactID: "a", SendAt: created.Add(time.Hour), Body: "hi a"},
		{ContactID: "b", SendAt: created.Add(2 * time.Hour), Body: "hi b"},
	})
	require.NoError(t, err)
	assert.Equal(t, "camp-007", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)
	sendAt := created.Add(48 * time.Hour)
	mock.ExpectQuery(`SELECT name, created_at FROM campaigns WHERE seq = \$1`).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "created_at"}).AddRow("Launch", created))
	mock.ExpectQuery(`SELECT contact_id, send_at, body`).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"contact_id", "send_at", "body"}).AddRow("a", sendAt, "hi"))

	c, err := (&CampaignRepository{DB: db}).GetByID(context.Background(), "camp-012")
	require.NoError(t, err)
	assert.Equal(t, "camp-012", c.ID)
	assert.Equal(t, "Launch", c.Name)
	require.Len(t, c.Messages, 1)
	assert.Equal(t, "a", c.Messages[0].ContactID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepositoryGetByIDMalformed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = (&CampaignRepository{DB: db}).GetByID(context.Background(), "not-an-id")
	var notFound *appErrors.ErrCampaignNotFound
	assert.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCampaignRepositoryListCampaigns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, time.October, 17, 10, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM campaigns`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT c.seq, c.name, c.created_at, COUNT\(m.position\)`).
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "name", "created_at", "count"}).
			AddRow(int64(3), "third", created, 4).
			AddRow(int64(2), "second", created, 0))
	mock.ExpectCommit()

	list, total, err := (&CampaignRepository{DB: db}).ListCampaigns(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 2)
	assert.Equal(t, "camp-003", list[0].ID)
	assert.Equal(t, 4, list[0].MessageCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
