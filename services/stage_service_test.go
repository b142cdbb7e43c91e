package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"relocation-api/models"
)

func TestNewStageRowsMatchesCatalog(t *testing.T) {
	rows := NewStageRows(9)

	if len(rows) != models.StageCount {
		t.Fatalf("expected %d rows, got %d", models.StageCount, len(rows))
	}

	for i, row := range rows {
		def := models.StageCatalog[i]
		if row.ClientID != 9 {
			t.Fatalf("row %d has client %d", i, row.ClientID)
		}
		if row.StageNumber != def.Number || row.StageName != def.Name {
			t.Fatalf("row %d does not match catalog: %+v", i, row)
		}
		if row.Status != models.StageNotStarted {
			t.Fatalf("row %d not initialized as not_started: %s", i, row.Status)
		}

		docs := row.RequiredDocumentList()
		if len(docs) != len(def.RequiredDocuments) {
			t.Fatalf("row %d documents: got %v want %v", i, docs, def.RequiredDocuments)
		}
		for j, label := range def.RequiredDocuments {
			if docs[j] != label {
				t.Fatalf("row %d document %d: got %q want %q", i, j, docs[j], label)
			}
		}
	}
}

func TestEnsureStagesIsIdempotent(t *testing.T) {
	db, mock := newMockGormDB(t)

	rows := sqlmock.NewRows([]string{"stage_id", "client_id", "stage_number", "stage_name", "status"})
	for i, def := range models.StageCatalog {
		rows.AddRow(i+1, 9, def.Number, def.Name, models.StageNotStarted)
	}

	// An initialized client is read back with no writes.
	mock.ExpectQuery("SELECT \\* FROM `client_stages` WHERE client_id = \\?").
		WithArgs(9).
		WillReturnRows(rows)

	stages, err := EnsureStages(db, 9)
	require.NoError(t, err)
	require.Len(t, stages, models.StageCount)
	require.Equal(t, models.StageNotStarted, stages[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureStagesInitializesAllSixAtOnce(t *testing.T) {
	db, mock := newMockGormDB(t)

	mock.ExpectQuery("SELECT \\* FROM `client_stages` WHERE client_id = \\?").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"stage_id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `client_stages`").
		WillReturnResult(sqlmock.NewResult(1, int64(models.StageCount)))
	mock.ExpectCommit()

	stages, err := EnsureStages(db, 9)
	require.NoError(t, err)
	require.Len(t, stages, models.StageCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStageValidatesInput(t *testing.T) {
	db, _ := newMockGormDB(t)

	_, err := UpdateStage(db, 9, StagePatch{StageNumber: 0})
	require.ErrorIs(t, err, ErrInvalidStageNumber)

	_, err = UpdateStage(db, 9, StagePatch{StageNumber: 7})
	require.ErrorIs(t, err, ErrInvalidStageNumber)

	bogus := "done-ish"
	_, err = UpdateStage(db, 9, StagePatch{StageNumber: 2, Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidStageStatus)
}

func TestUpdateStageTouchesOnlyTargetRow(t *testing.T) {
	db, mock := newMockGormDB(t)

	existing := sqlmock.NewRows([]string{"stage_id", "client_id", "stage_number", "stage_name", "status"})
	for i, def := range models.StageCatalog {
		existing.AddRow(i+1, 9, def.Number, def.Name, models.StageNotStarted)
	}

	mock.ExpectQuery("SELECT \\* FROM `client_stages` WHERE client_id = \\?").
		WithArgs(9).
		WillReturnRows(existing)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `client_stages` SET .* WHERE client_id = \\? AND stage_number = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `client_stages` WHERE client_id = \\? AND stage_number = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"stage_id", "client_id", "stage_number", "stage_name", "status"}).
			AddRow(2, 9, 2, models.StageCatalog[1].Name, models.StageCompleted))

	completed := models.StageCompleted
	stage, err := UpdateStage(db, 9, StagePatch{StageNumber: 2, Status: &completed})
	require.NoError(t, err)
	require.Equal(t, 2, stage.StageNumber)
	require.Equal(t, models.StageCompleted, stage.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
