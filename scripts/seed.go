//go:build ignore
// +build ignore

// Manual smoke/seed script for the catalogue API.
//
// Usage:
//
//	SERVER_ADDR=http://localhost:8080 go run ./scripts/seed.go
//
// What it does:
//  1. Registers a principal at /auth/create and keeps the returned token.
//  2. Batch-creates three users and two books.
//  3. Attaches a details record to the first book and borrows it.
//  4. Prints the composed /users-borrowed view.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const defaultServerAddr = "http://localhost:8080"

func main() {
	serverAddr := os.Getenv("SERVER_ADDR")
	if serverAddr == "" {
		serverAddr = defaultServerAddr
	}

	client := &http.Client{Timeout: 10 * time.Second}

	token := obtainToken(client, serverAddr)
	log.Printf("obtained token (%d chars)", len(token))

	users := []map[string]interface{}{
		{"Name": "Ada Lovelace", "Email": "ada@example.com", "MembershipDate": "2024-01-15"},
		{"Name": "Alan Turing", "Email": "alan@example.com", "MembershipDate": "2024-02-01"},
		{"Name": "Grace Hopper", "Email": "grace@example.com", "MembershipDate": "2024-03-10"},
	}
	createdUsers := post(client, serverAddr+"/users", token, users)
	log.Printf("created users: %s", createdUsers)

	books := []map[string]interface{}{
		{"Title": "Dune", "ISBN": "9780441013593", "PublishedDate": "1965-08-01", "Genre": "Sci-Fi"},
		{"Title": "Hyperion", "ISBN": "9780553283686", "PublishedDate": "1989-05-26", "Genre": "Sci-Fi"},
	}
	createdBooks := post(client, serverAddr+"/books", token, books)
	log.Printf("created books: %s", createdBooks)

	details := map[string]interface{}{
		"BookID": 1, "NumberOfPages": 412, "Publisher": "Chilton Books", "Language": "English",
	}
	log.Printf("created details: %s", post(client, serverAddr+"/bookdetails", token, details))

	borrow := map[string]interface{}{
		"UserID": 1, "BookID": 1, "BorrowDate": "2024-06-01",
	}
	log.Printf("created borrow: %s", post(client, serverAddr+"/borrowedbooks", token, borrow))

	resp, err := client.Get(serverAddr + "/users-borrowed")
	if err != nil {
		log.Fatalf("composed view request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("users-borrowed (%d):\n%s\n", resp.StatusCode, body)
}

func obtainToken(client *http.Client, serverAddr string) string {
	creds := map[string]string{"username": "seeder", "password": "seed-password-1"}
	body, _ := json.Marshal(creds)

	resp, err := client.Post(serverAddr+"/auth/create", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("auth create failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		// Principal probably exists from a previous run; log in instead.
		resp2, err := client.Post(serverAddr+"/auth/token", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("auth token failed: %v", err)
		}
		defer resp2.Body.Close()
		resp = resp2
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Token == "" {
		log.Fatalf("no token in auth response (status %d)", resp.StatusCode)
	}
	return out.Token
}

func post(client *http.Client, url, token string, payload interface{}) string {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		log.Printf("POST %s -> %d: %s", url, resp.StatusCode, out)
	}
	return string(out)
}
