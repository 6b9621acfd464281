package models

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDataBase Open the sqlite database and run the migrations.
func ConnectDataBase(filename string) {
	db, err := gorm.Open(sqlite.Open(filename), &gorm.Config{})

	if err != nil {
		log.Fatal(fmt.Sprintf("Cannot connect sqlite database at %s: %s", filename, err.Error()))
	}
	log.Info(fmt.Sprintf("Connected sqlite database at %s", filename))

	if err := Migrate(db); err != nil {
		log.Fatal("migration error: ", err)
	}

	DB = db
}

// Migrate Create the tables and seed the public group.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&User{}, &Group{}, &Project{}, &Image{}, &AnnotationsJSON{})
	if err != nil {
		return err
	}
	return seedPublicGroup(db)
}

// seedPublicGroup Make sure the sentinel public group exists with its fixed id.
func seedPublicGroup(db *gorm.DB) error {
	var group Group
	err := db.First(&group, PublicGroupID).Error
	if err == gorm.ErrRecordNotFound {
		group = Group{Name: "public"}
		group.ID = PublicGroupID
		return db.Create(&group).Error
	}
	return err
}
