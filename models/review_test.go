package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 0.0, RoundRating(0))
	assert.Equal(t, 1.7, RoundRating(5.0/3.0))
	assert.Equal(t, 4.5, RoundRating(4.45))
	assert.Equal(t, 4.4, RoundRating(4.44))
	assert.Equal(t, 5.0, RoundRating(5))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&User{}, &Runner{}, &Service{}, &Booking{}, &Review{}))
	return gdb
}

func seedRunner(t *testing.T, gdb *gorm.DB) *Runner {
	t.Helper()
	user := &User{Username: "runner", Email: "runner@example.com", Password: "x", Role: RoleRunner, IsActive: true}
	require.NoError(t, gdb.Create(user).Error)
	runner := &Runner{UserID: user.ID, HourlyRate: 20, City: "Austin", IsAvailable: true}
	require.NoError(t, gdb.Create(runner).Error)
	return runner
}

func TestRecalculateRunnerRating(t *testing.T) {
	gdb := openTestDB(t)
	runner := seedRunner(t, gdb)

	addReview := func(bookingID uint, rating int, approved bool) *Review {
		r := &Review{
			BookingID:  bookingID,
			ReviewerID: 100,
			RevieweeID: runner.UserID,
			Rating:     rating,
			IsApproved: approved,
		}
		require.NoError(t, gdb.Create(r).Error)
		return r
	}

	addReview(1, 5, true)
	addReview(2, 2, true)
	require.NoError(t, RecalculateRunnerRating(gdb, runner.UserID))

	var got Runner
	require.NoError(t, gdb.First(&got, runner.ID).Error)
	assert.Equal(t, 3.5, got.Rating)
	assert.Equal(t, 2, got.TotalReviews)

	// unapproved reviews never count
	addReview(3, 1, false)
	require.NoError(t, RecalculateRunnerRating(gdb, runner.UserID))
	require.NoError(t, gdb.First(&got, runner.ID).Error)
	assert.Equal(t, 3.5, got.Rating)
	assert.Equal(t, 2, got.TotalReviews)
}

func TestRecalculateRunnerRatingRounding(t *testing.T) {
	gdb := openTestDB(t)
	runner := seedRunner(t, gdb)

	for i, rating := range []int{1, 2, 2} {
		require.NoError(t, gdb.Create(&Review{
			BookingID:  uint(i + 1),
			ReviewerID: 100,
			RevieweeID: runner.UserID,
			Rating:     rating,
			IsApproved: true,
		}).Error)
	}
	require.NoError(t, RecalculateRunnerRating(gdb, runner.UserID))

	var got Runner
	require.NoError(t, gdb.First(&got, runner.ID).Error)
	assert.Equal(t, 1.7, got.Rating)
	assert.Equal(t, 3, got.TotalReviews)
}

func TestRecalculateRunnerRatingResetsWhenEmpty(t *testing.T) {
	gdb := openTestDB(t)
	runner := seedRunner(t, gdb)

	review := &Review{BookingID: 1, ReviewerID: 100, RevieweeID: runner.UserID, Rating: 4, IsApproved: true}
	require.NoError(t, gdb.Create(review).Error)
	require.NoError(t, RecalculateRunnerRating(gdb, runner.UserID))

	require.NoError(t, gdb.Delete(review).Error)
	require.NoError(t, RecalculateRunnerRating(gdb, runner.UserID))

	var got Runner
	require.NoError(t, gdb.First(&got, runner.ID).Error)
	assert.Equal(t, 0.0, got.Rating)
	assert.Equal(t, 0, got.TotalReviews)
}

func TestRecalculateRunnerRatingNoProfile(t *testing.T) {
	gdb := openTestDB(t)
	assert.NoError(t, RecalculateRunnerRating(gdb, 999))
}

func TestHasExistingReview(t *testing.T) {
	gdb := openTestDB(t)
	runner := seedRunner(t, gdb)

	first := &Review{BookingID: 1, ReviewerID: 100, RevieweeID: runner.UserID, Rating: 5, IsApproved: true}
	require.NoError(t, gdb.Create(first).Error)

	dup := &Review{BookingID: 1, ReviewerID: 100}
	exists, err := dup.HasExistingReview(gdb)
	require.NoError(t, err)
	assert.True(t, exists)

	otherBooking := &Review{BookingID: 2, ReviewerID: 100}
	exists, err = otherBooking.HasExistingReview(gdb)
	require.NoError(t, err)
	assert.False(t, exists)
}
