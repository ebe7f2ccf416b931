package gormtabular

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

type Friend struct {
	ID   uint
	Name string
}

func (f Friend) String() string {
	return f.Name
}

type Person struct {
	ID      uint
	Name    string
	Active  bool
	Profile datatypes.JSON
	Friends []*Friend `gorm:"many2many:person_friends"`
}

func TestMain(m *testing.M) {
	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	// A single connection keeps the shared in-memory database alive.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Person{}, &Friend{}); err != nil {
		panic(err)
	}

	m.Run()
}

func createPerson(t *testing.T, name string, friendNames ...string) *Person {
	t.Helper()
	person := &Person{
		Name:    name,
		Active:  true,
		Profile: datatypes.JSON(`{"city":"paris"}`),
	}
	for _, friendName := range friendNames {
		person.Friends = append(person.Friends, &Friend{Name: friendName})
	}
	require.NoError(t, db.Create(person).Error)
	return person
}
