//go:build integration
// +build integration

package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Children first so foreign keys never block the drop.
var integrationTables = []string{
	"audit_entries",
	"attachments",
	"task_comments",
	"task_buildings",
	"task_assignees",
	"tasks",
	"buildings",
	"users",
}

type IntegrationSuiteBase struct {
	suite.Suite

	adminDB  *sqlx.DB
	DB       *sqlx.DB
	database string
}

func (s *IntegrationSuiteBase) SetupSuite() {
	s.database = envOrDefault("MYSQL_TEST_DATABASE", envOrDefault("MYSQL_DATABASE", "cmms")+"_test")

	adminDB, err := sqlx.Connect("mysql", testDSN(""))
	if err != nil {
		s.T().Skipf("skipping integration suite: mysql unavailable: %v", err)
	}
	s.adminDB = adminDB

	_, err = s.adminDB.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", s.database))
	s.Require().NoError(err)

	s.DB, err = sqlx.Connect("mysql", testDSN(s.database))
	s.Require().NoError(err)
}

func (s *IntegrationSuiteBase) TearDownSuite() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
	if s.adminDB == nil {
		return
	}
	// Only scratch databases are dropped.
	if strings.HasSuffix(s.database, "_test") {
		_, err := s.adminDB.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.database))
		s.Require().NoError(err)
	}
	s.Require().NoError(s.adminDB.Close())
}

func (s *IntegrationSuiteBase) ResetDatabase() {
	resetSchema(s.T(), s.DB)
}

func resetSchema(t *testing.T, db *sqlx.DB) {
	t.Helper()

	for _, table := range integrationTables {
		_, err := db.Exec("DROP TABLE IF EXISTS `" + table + "`")
		require.NoError(t, err)
	}

	migration, err := os.ReadFile(filepath.Join(projectRoot(t), "db", "migrations", "001_init.up.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(migration))
	require.NoError(t, err)
}

func projectRoot(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "..", ".."))
}

func testDSN(database string) string {
	cfg := mysql.NewConfig()
	cfg.User = envOrDefault("MYSQL_ROOT_USER", "root")
	cfg.Passwd = envOrDefault("MYSQL_ROOT_PASSWORD", "root")
	cfg.Net = "tcp"
	cfg.Addr = envOrDefault("MYSQL_HOST", "127.0.0.1") + ":" + envOrDefault("MYSQL_PORT", "3306")
	cfg.DBName = database
	cfg.ParseTime = true
	cfg.MultiStatements = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
