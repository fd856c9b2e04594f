package main

import (
	"edu/config"
	"edu/database"
	courseModels "edu/models/course"
	"encoding/csv"
	"log"
	"os"
	"strings"
)

// Imports subjects from a CSV with "title" and "slug" columns, updating
// titles of subjects whose slug already exists.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := "subjects.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	inserted, updated, skipped := 0, 0, 0
	for _, row := range records[1:] {
		subject := courseModels.Subject{
			Title: getField(row, headerIndex, "title"),
			Slug:  getField(row, headerIndex, "slug"),
		}
		if subject.Title == "" || subject.Slug == "" {
			skipped++
			continue
		}

		var existing courseModels.Subject
		if err := database.Database.Db.Where("slug = ?", subject.Slug).First(&existing).Error; err != nil {
			if err := database.Database.Db.Create(&subject).Error; err != nil {
				log.Printf("Error inserting subject %s: %v", subject.Slug, err)
				continue
			}
			inserted++
			continue
		}

		existing.Title = subject.Title
		if err := database.Database.Db.Save(&existing).Error; err != nil {
			log.Printf("Error updating subject %s: %v", subject.Slug, err)
			continue
		}
		updated++
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
