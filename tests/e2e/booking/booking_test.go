//go:build e2e

package booking_test

import (
	"net/http"
	"testing"

	reqdto "cridaa-booking/internal/handler/dto/request"
	resdto "cridaa-booking/internal/handler/dto/response"
	"cridaa-booking/tests/common/httptest"
	"cridaa-booking/tests/e2e"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func signup(t *testing.T, router *gin.Engine, username, email string) (string, string) {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/signup", reqdto.SignupRequest{
		Username:  username,
		Email:     email,
		Password:  "secret123",
		FirstName: "Test",
		LastName:  "User",
	}, "")

	var auth resdto.AuthResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &auth)
	require.NotEmpty(t, auth.Token)
	require.NotNil(t, auth.User)

	return auth.Token, auth.User.ID.String()
}

func TestBookingFlow(t *testing.T) {
	_, router, _ := e2e.SetupE2EEnvironment(t)

	tokenA, userA := signup(t, router, "alice", "alice@example.com")
	tokenB, userB := signup(t, router, "bob", "bob@example.com")
	require.NotEqual(t, userA, userB)

	// The schedule is seeded on startup, so the listing is non-empty.
	var listing resdto.SlotListResponse
	w := httptest.PerformRequest(t, router, http.MethodGet, "/api/slots", nil, "")
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &listing)
	require.NotEmpty(t, listing.Slots)
	for _, sl := range listing.Slots {
		require.Equal(t, "available", sl.Status)
		require.Nil(t, sl.OwnerID)
	}

	target := listing.Slots[0]
	bookPath := "/api/slots/" + target.ID.String() + "/book"

	// Booking requires authentication.
	w = httptest.PerformRequest(t, router, http.MethodPost, bookPath, nil, "")
	httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")

	// Alice books the slot.
	var booked resdto.BookSlotResponse
	w = httptest.PerformRequest(t, router, http.MethodPost, bookPath, nil, tokenA)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &booked)
	require.Equal(t, "Slot booked successfully", booked.Message)
	require.Equal(t, "booked", booked.Slot.Status)
	require.NotNil(t, booked.Slot.OwnerID)
	require.Equal(t, userA, booked.Slot.OwnerID.String())
	require.NotNil(t, booked.Slot.BookedAt)

	// Bob loses the race for the same slot.
	w = httptest.PerformRequest(t, router, http.MethodPost, bookPath, nil, tokenB)
	httptest.AssertErrorResponse(t, w, http.StatusConflict, "Slot is already booked")

	// The booked slot disappears from the public listing.
	w = httptest.PerformRequest(t, router, http.MethodGet, "/api/slots", nil, "")
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &listing)
	for _, sl := range listing.Slots {
		require.NotEqual(t, target.ID, sl.ID)
	}

	// Alice sees her booking, Bob sees none.
	var mine resdto.SlotListResponse
	w = httptest.PerformRequest(t, router, http.MethodGet, "/api/slots/mine", nil, tokenA)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &mine)
	require.Len(t, mine.Slots, 1)
	require.Equal(t, target.ID, mine.Slots[0].ID)

	w = httptest.PerformRequest(t, router, http.MethodGet, "/api/slots/mine", nil, tokenB)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &mine)
	require.Empty(t, mine.Slots)

	// Bob cannot cancel Alice's booking.
	w = httptest.PerformRequest(t, router, http.MethodDelete, bookPath, nil, tokenB)
	httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Slot is booked by another user")

	// Alice cancels her own booking.
	var cancelled resdto.CancelSlotResponse
	w = httptest.PerformRequest(t, router, http.MethodDelete, bookPath, nil, tokenA)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
	require.Equal(t, "Booking cancelled successfully", cancelled.Message)
	require.Equal(t, "available", cancelled.Slot.Status)
	require.Nil(t, cancelled.Slot.OwnerID)

	// Cancelling twice is rejected.
	w = httptest.PerformRequest(t, router, http.MethodDelete, bookPath, nil, tokenA)
	httptest.AssertErrorResponse(t, w, http.StatusConflict, "Slot is not booked")

	// The freed slot can be booked by Bob.
	w = httptest.PerformRequest(t, router, http.MethodPost, bookPath, nil, tokenB)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &booked)
	require.Equal(t, userB, booked.Slot.OwnerID.String())
}

func TestAuthFlow(t *testing.T) {
	_, router, _ := e2e.SetupE2EEnvironment(t)

	token, userID := signup(t, router, "carol", "carol@example.com")

	// Duplicate email is rejected.
	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/signup", reqdto.SignupRequest{
		Username:  "carol2",
		Email:     "carol@example.com",
		Password:  "secret123",
		FirstName: "Test",
		LastName:  "User",
	}, "")
	httptest.AssertErrorResponse(t, w, http.StatusConflict, "Username or email already taken")

	// Login with the right and wrong password.
	var auth resdto.AuthResponse
	w = httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login", reqdto.LoginRequest{
		Email:    "carol@example.com",
		Password: "secret123",
	}, "")
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &auth)
	require.Equal(t, userID, auth.User.ID.String())

	w = httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login", reqdto.LoginRequest{
		Email:    "carol@example.com",
		Password: "wrongpass",
	}, "")
	httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")

	// The token resolves to the current user.
	var me resdto.UserResponse
	w = httptest.PerformRequest(t, router, http.MethodGet, "/api/auth/me", nil, token)
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &me)
	require.Equal(t, "carol", me.User.Username)
	require.Equal(t, "carol@example.com", me.User.Email)

	w = httptest.PerformRequest(t, router, http.MethodGet, "/api/auth/me", nil, "invalid.token.here")
	httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
}

func TestBookingSurvivesUnknownSlot(t *testing.T) {
	_, router, _ := e2e.SetupE2EEnvironment(t)

	tokenA, _ := signup(t, router, "dave", "dave@example.com")

	w := httptest.PerformRequest(t, router, http.MethodPost,
		"/api/slots/00000000-0000-0000-0000-000000000000/book", nil, tokenA)
	httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Slot not found")

	w = httptest.PerformRequest(t, router, http.MethodPost, "/api/slots/not-a-uuid/book", nil, tokenA)
	httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid slot ID format")
}
