package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relocation-api/models"
)

func TestUpdateClientRejectsInvalidPhone(t *testing.T) {
	mock := setupTestDB(t)

	mock.ExpectQuery("SELECT \\* FROM `clients` WHERE client_id = \\? AND delete_at IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"client_id", "selected_offer"}).
			AddRow(7, models.OfferBasic))

	c, w := newAdminContext(t, http.MethodPatch, "/api/v1/clients/7",
		gin.H{"phone": "not-a-phone"})
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	UpdateClient(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid phone number")
	// Nothing written.
	require.NoError(t, mock.ExpectationsWereMet())
}
