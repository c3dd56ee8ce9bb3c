package database

import (
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/misionvictoriosa/site-backend/models"
)

// DatabaseTestSuite provides a base test suite backed by an in-memory
// SQLite database with the full schema migrated.
type DatabaseTestSuite struct {
	suite.Suite
	db       Database
	gormDB   *gorm.DB
	userRepo *UserRepo
	projects *ProjectRepo
	media    *MediaRepo
}

func (s *DatabaseTestSuite) SetupTest() {
	gormDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "Failed to create in-memory database")

	s.gormDB = gormDB
	s.db = New(gormDB)
	require.NoError(s.T(), s.db.Migrate(), "Failed to run database migrations")

	s.userRepo = s.db.UserRepo()
	s.projects = s.db.ProjectRepo()
	s.media = s.db.MediaRepo()
}

func (s *DatabaseTestSuite) TearDownTest() {
	sqlDB, err := s.gormDB.DB()
	if err == nil && sqlDB != nil {
		_ = sqlDB.Close()
	}
}

// Helper methods for creating test data

func (s *DatabaseTestSuite) createTestProject(title string) *models.Project {
	project := &models.Project{
		Title:       title,
		Description: "Test project description",
	}
	s.Require().NoError(s.projects.Create(project, nil, nil))
	s.Require().NotZero(project.ID)
	return project
}

func (s *DatabaseTestSuite) createTestUser(username string) *models.User {
	hash, err := models.HashPassword("secret")
	s.Require().NoError(err)
	user := &models.User{Username: username, PasswordHash: hash}
	s.Require().NoError(s.userRepo.Add(user))
	return user
}

func strPtr(v string) *string {
	return &v
}
