// File: /repositories/repositories_test.go
package repositories

import (
	"context"
	"testing"
	"time"

	"fleetexpense-api/database"
	"fleetexpense-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	users    *UserRepository
	vehicles *VehicleRepository
	groups   *GroupRepository
	expenses *ExpenseRepository

	user    *models.User
	vehicle *models.Vehicle
	group   *models.Group
}

func (suite *RepositoryTestSuite) SetupTest() {
	db, err := database.OpenInMemory()
	require.NoError(suite.T(), err, "failed to open test database")

	suite.ctx = context.Background()
	suite.db = db
	suite.users = NewUserRepository(db)
	suite.vehicles = NewVehicleRepository(db)
	suite.groups = NewGroupRepository(db)
	suite.expenses = NewExpenseRepository(db)

	suite.user = suite.createUser("Ana", "ana@example.com")
	suite.vehicle = suite.createVehicle("Van 1")
	suite.group = suite.createGroup(suite.user.ID, suite.vehicle.ID)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (suite *RepositoryTestSuite) createUser(name, email string) *models.User {
	user := &models.User{ID: uuid.New().String(), Name: name, Email: email, Password: "x", Role: models.RoleUser}
	require.NoError(suite.T(), suite.users.Create(suite.ctx, user))
	return user
}

func (suite *RepositoryTestSuite) createVehicle(name string) *models.Vehicle {
	vehicle := &models.Vehicle{ID: uuid.New().String(), Name: name}
	require.NoError(suite.T(), suite.vehicles.Create(suite.ctx, vehicle))
	return vehicle
}

func (suite *RepositoryTestSuite) createGroup(userID, vehicleID string) *models.Group {
	group := &models.Group{ID: uuid.New().String(), UserID: userID, VehicleID: vehicleID}
	require.NoError(suite.T(), suite.groups.Create(suite.ctx, group))
	return group
}

func (suite *RepositoryTestSuite) addService(groupID string, amount *float64, date time.Time) *models.Service {
	record := &models.Service{
		ExpenseBase: models.ExpenseBase{ID: uuid.New().String(), GroupID: groupID, Amount: amount, Date: date},
		ServiceType: "oil",
	}
	require.NoError(suite.T(), suite.expenses.Create(suite.ctx, record))
	return record
}

func amount(v float64) *float64 { return &v }

func (suite *RepositoryTestSuite) TestFindByEmail() {
	found, err := suite.users.FindByEmail(suite.ctx, "ana@example.com")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.user.ID, found.ID)

	_, err = suite.users.FindByEmail(suite.ctx, "nobody@example.com")
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *RepositoryTestSuite) TestAmountsIncludesWindowBoundaries() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	suite.addService(suite.group.ID, amount(10), start)
	suite.addService(suite.group.ID, amount(20), end)
	suite.addService(suite.group.ID, amount(40), start.Add(-time.Second))
	suite.addService(suite.group.ID, amount(80), end.Add(time.Second))

	amounts, err := suite.expenses.Amounts(suite.ctx, models.CategoryService, []string{suite.group.ID}, &models.DateRange{Start: start, End: end})
	require.NoError(suite.T(), err)
	require.Len(suite.T(), amounts, 2)
	assert.Equal(suite.T(), 10.0, amounts[0].Float64)
	assert.Equal(suite.T(), 20.0, amounts[1].Float64)

	all, err := suite.expenses.Amounts(suite.ctx, models.CategoryService, []string{suite.group.ID}, nil)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 4)
}

func (suite *RepositoryTestSuite) TestAmountsReportsNullAmounts() {
	suite.addService(suite.group.ID, nil, time.Now().UTC())
	suite.addService(suite.group.ID, amount(5), time.Now().UTC().Add(time.Minute))

	amounts, err := suite.expenses.Amounts(suite.ctx, models.CategoryService, []string{suite.group.ID}, nil)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), amounts, 2)
	assert.False(suite.T(), amounts[0].Valid)
	assert.True(suite.T(), amounts[1].Valid)
}

func (suite *RepositoryTestSuite) TestAmountsWithoutGroupsSkipsQuery() {
	amounts, err := suite.expenses.Amounts(suite.ctx, models.CategoryTax, nil, nil)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), amounts)
}

func (suite *RepositoryTestSuite) TestGroupIDsFilters() {
	other := suite.createVehicle("Van 2")
	second := suite.createGroup(suite.user.ID, other.ID)
	bob := suite.createUser("Bob", "bob@example.com")
	third := suite.createGroup(bob.ID, suite.vehicle.ID)

	byUser, err := suite.groups.IDs(suite.ctx, GroupFilter{UserID: suite.user.ID})
	require.NoError(suite.T(), err)
	assert.ElementsMatch(suite.T(), []string{suite.group.ID, second.ID}, byUser)

	byVehicle, err := suite.groups.IDs(suite.ctx, GroupFilter{VehicleID: suite.vehicle.ID})
	require.NoError(suite.T(), err)
	assert.ElementsMatch(suite.T(), []string{suite.group.ID, third.ID}, byVehicle)

	pair, err := suite.groups.IDs(suite.ctx, GroupFilter{UserID: bob.ID, VehicleID: suite.vehicle.ID})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), []string{third.ID}, pair)

	all, err := suite.groups.IDs(suite.ctx, GroupFilter{})
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 3)

	none, err := suite.groups.IDs(suite.ctx, GroupFilter{IDs: []string{}})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), none)
}

func (suite *RepositoryTestSuite) TestDeleteGroupCascadesToExpenses() {
	suite.addService(suite.group.ID, amount(10), time.Now().UTC())
	tax := &models.Tax{ExpenseBase: models.ExpenseBase{ID: uuid.New().String(), GroupID: suite.group.ID, Amount: amount(3), Date: time.Now().UTC()}}
	require.NoError(suite.T(), suite.expenses.Create(suite.ctx, tax))

	require.NoError(suite.T(), suite.groups.Delete(suite.ctx, suite.group.ID))

	var services, taxes int64
	suite.db.Model(&models.Service{}).Count(&services)
	suite.db.Model(&models.Tax{}).Count(&taxes)
	assert.Zero(suite.T(), services)
	assert.Zero(suite.T(), taxes)

	assert.ErrorIs(suite.T(), suite.groups.Delete(suite.ctx, suite.group.ID), ErrNotFound)
}

func (suite *RepositoryTestSuite) TestDeleteVehicleCascadesToGroups() {
	suite.addService(suite.group.ID, amount(10), time.Now().UTC())

	require.NoError(suite.T(), suite.vehicles.Delete(suite.ctx, suite.vehicle.ID))

	var groups int64
	suite.db.Model(&models.Group{}).Count(&groups)
	assert.Zero(suite.T(), groups)

	_, err := suite.vehicles.FindByID(suite.ctx, suite.vehicle.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *RepositoryTestSuite) TestDeleteUserCascadesToGroups() {
	require.NoError(suite.T(), suite.users.Delete(suite.ctx, suite.user.ID))

	_, err := suite.groups.FindByID(suite.ctx, suite.group.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
	assert.ErrorIs(suite.T(), suite.users.Delete(suite.ctx, suite.user.ID), ErrNotFound)
}

func (suite *RepositoryTestSuite) TestListForUser() {
	suite.createVehicle("Unassigned")

	vehicles, err := suite.vehicles.ListForUser(suite.ctx, suite.user.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), vehicles, 1)
	assert.Equal(suite.T(), suite.vehicle.ID, vehicles[0].ID)
}

func (suite *RepositoryTestSuite) TestUpdateMissingVehicle() {
	err := suite.vehicles.Update(suite.ctx, "missing", map[string]interface{}{"name": "x"})
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *RepositoryTestSuite) TestExpiringTaxes() {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 5)
	later := now.AddDate(0, 2, 0)

	for _, validTo := range []time.Time{soon, later} {
		validTo := validTo
		tax := &models.Tax{
			ExpenseBase: models.ExpenseBase{ID: uuid.New().String(), GroupID: suite.group.ID, Amount: amount(100), Date: now},
			TaxType:     "road",
			ValidTo:     &validTo,
		}
		require.NoError(suite.T(), suite.expenses.Create(suite.ctx, tax))
	}

	taxes, err := suite.expenses.ExpiringTaxes(suite.ctx, now, now.AddDate(0, 0, 14))
	require.NoError(suite.T(), err)
	require.Len(suite.T(), taxes, 1)
	assert.True(suite.T(), taxes[0].ValidTo.Equal(soon))

	taxes, err = suite.expenses.ExpiringTaxes(suite.ctx, soon, soon.AddDate(0, 0, 1))
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), taxes)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
