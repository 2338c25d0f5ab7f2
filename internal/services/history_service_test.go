package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/craftsync/task-activity-api/internal/models"
	"github.com/craftsync/task-activity-api/internal/repository"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *HistoryService
	user    *models.User
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	err = suite.db.AutoMigrate(&models.User{}, &models.TaskHistory{})
	suite.Require().NoError(err)

	suite.service = NewHistoryService(
		repository.NewHistoryRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)

	suite.user = &models.User{
		Username:       "auditor",
		Email:          "auditor@example.com",
		HashedPassword: "hashedpassword",
		IsActive:       true,
	}
	suite.Require().NoError(suite.db.Create(suite.user).Error)
}

func (suite *HistoryServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *HistoryServiceTestSuite) seedEntry(taskID uint64, action models.HistoryAction, status string, createdAt time.Time) *models.TaskHistory {
	entry := &models.TaskHistory{
		TaskID:       taskID,
		Action:       action,
		NewData:      &models.TaskSnapshot{Status: &status},
		CreatedAt:    createdAt,
		ModifiedByID: suite.user.ID,
	}
	suite.Require().NoError(suite.db.Create(entry).Error)
	return entry
}

func (suite *HistoryServiceTestSuite) TestListAllOrdering() {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	suite.seedEntry(1, models.HistoryActionAdded, "Not Started", base)
	suite.seedEntry(2, models.HistoryActionAdded, "Not Started", base.Add(time.Hour))
	suite.seedEntry(1, models.HistoryActionModified, "In Progress", base.Add(2*time.Hour))

	asc, err := suite.service.ListAll(0, 10, "asc")
	suite.Require().NoError(err)
	suite.Require().Len(asc, 3)
	suite.Equal(uint64(1), asc[0].TaskID)
	suite.Equal(models.HistoryActionModified, asc[2].Action)

	desc, err := suite.service.ListAll(0, 10, "desc")
	suite.Require().NoError(err)
	suite.Require().Len(desc, 3)
	suite.Equal(models.HistoryActionModified, desc[0].Action)
}

func (suite *HistoryServiceTestSuite) TestListAllResolvesModifier() {
	suite.seedEntry(1, models.HistoryActionAdded, "Not Started", time.Now().UTC())

	entries, err := suite.service.ListAll(0, 10, "asc")
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("auditor", entries[0].ModifiedBy.Username)
}

func (suite *HistoryServiceTestSuite) TestListAllPagination() {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		suite.seedEntry(uint64(i+1), models.HistoryActionAdded, "Not Started", base.Add(time.Duration(i)*time.Minute))
	}

	page, err := suite.service.ListAll(2, 2, "asc")
	suite.Require().NoError(err)
	suite.Require().Len(page, 2)
	suite.Equal(uint64(3), page[0].TaskID)
	suite.Equal(uint64(4), page[1].TaskID)
}

func (suite *HistoryServiceTestSuite) TestListForTask() {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	suite.seedEntry(7, models.HistoryActionAdded, "Not Started", base)
	suite.seedEntry(7, models.HistoryActionModified, "In Progress", base.Add(time.Hour))
	suite.seedEntry(8, models.HistoryActionAdded, "Not Started", base)

	entries, err := suite.service.ListForTask(7)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(models.HistoryActionAdded, entries[0].Action)
	suite.Equal(models.HistoryActionModified, entries[1].Action)
}

func (suite *HistoryServiceTestSuite) TestLatestForTaskNewestFirst() {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	suite.seedEntry(7, models.HistoryActionAdded, "Not Started", base)
	suite.seedEntry(7, models.HistoryActionModified, "In Progress", base.Add(time.Hour))
	suite.seedEntry(7, models.HistoryActionModified, "Completed", base.Add(2*time.Hour))

	entries, err := suite.service.LatestForTask(7)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Require().NotNil(entries[0].NewData.Status)
	suite.Equal("Completed", *entries[0].NewData.Status)
	suite.Equal("In Progress", *entries[1].NewData.Status)
}

func (suite *HistoryServiceTestSuite) TestGetDetailsNoEntries() {
	_, err := suite.service.GetDetails(42)
	suite.ErrorIs(err, ErrHistoryNotFound)
}

func (suite *HistoryServiceTestSuite) TestGetDetailsSingleEntry() {
	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	suite.seedEntry(7, models.HistoryActionAdded, "Not Started", created)

	details, err := suite.service.GetDetails(7)
	suite.Require().NoError(err)

	suite.Equal("N/A", details.PreviousDataValue.Status)
	suite.Equal("N/A", details.PreviousDataValue.CreatedBy)
	suite.Equal("N/A", details.PreviousDataValue.CreatedAt)

	suite.Equal("Not Started", details.LatestDataValue.Status)
	suite.Equal("auditor", details.LatestDataValue.CreatedBy)
	suite.Equal("06/01/25 10:30", details.LatestDataValue.CreatedAt)
}

func (suite *HistoryServiceTestSuite) TestGetDetailsTwoEntries() {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	suite.seedEntry(7, models.HistoryActionAdded, "Not Started", base)

	previousStatus := "Not Started"
	newStatus := "In Progress"
	second := &models.TaskHistory{
		TaskID:       7,
		Action:       models.HistoryActionModified,
		PreviousData: &models.TaskSnapshot{Status: &previousStatus},
		NewData:      &models.TaskSnapshot{Status: &newStatus},
		CreatedAt:    base.Add(time.Hour),
		ModifiedByID: suite.user.ID,
	}
	suite.Require().NoError(suite.db.Create(second).Error)

	details, err := suite.service.GetDetails(7)
	suite.Require().NoError(err)

	suite.Equal("In Progress", details.LatestDataValue.Status)
	suite.Equal("auditor", details.LatestDataValue.CreatedBy)
	suite.Equal("06/01/25 11:00", details.LatestDataValue.CreatedAt)

	// The previous side reads the entry before last, which for an initial
	// "Added" entry carries no before-image.
	suite.Equal("N/A", details.PreviousDataValue.Status)
	suite.Equal("auditor", details.PreviousDataValue.CreatedBy)
	suite.Equal("06/01/25 10:00", details.PreviousDataValue.CreatedAt)
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
