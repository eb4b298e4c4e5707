package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/trongnd106/Banking-system/internal/domain"
	"github.com/trongnd106/Banking-system/internal/infrastructure/auth"
	"github.com/trongnd106/Banking-system/internal/infrastructure/postgres"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bank-cli",
		Short: "Banking system CLI tool",
		Long:  `A command line interface for interacting with the banking API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the banking API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	transactionCmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction operations",
	}

	var transferType string
	transferCmd := &cobra.Command{
		Use:   "create <sender-number> <sender-bank> <receiver-number> <receiver-bank> <amount>",
		Short: "Transfer funds between two accounts",
		Args:  cobra.ExactArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			createTransaction(args, transferType)
		},
	}
	transferCmd.Flags().StringVar(&transferType, "type", "transfer", "Transaction type")

	var page int
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List all transactions",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions("/api/v1/transactions/", page)
		},
	}
	historyCmd.Flags().IntVar(&page, "page", 1, "Page number")

	var myPage int
	myCmd := &cobra.Command{
		Use:   "my",
		Short: "List the authenticated user's transactions",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions("/api/v1/transactions/my", myPage)
		},
	}
	myCmd.Flags().IntVar(&myPage, "page", 1, "Page number")

	detailCmd := &cobra.Command{
		Use:   "detail <transaction-id>",
		Short: "Show the detail view of one transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getDetail(args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Hide a transaction from history views",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			deleteTransaction(args[0])
		},
	}

	transactionCmd.AddCommand(transferCmd, historyCmd, myCmd, detailCmd, deleteCmd)
	rootCmd.AddCommand(transactionCmd)

	tokenCmd := &cobra.Command{
		Use:   "token <username> <role>",
		Short: "Generate a bearer token for local testing",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			generateToken(args[0], args[1])
		},
	}
	rootCmd.AddCommand(tokenCmd)

	var databaseURL, migrationsPath string
	var down bool
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(databaseURL, migrationsPath, down)
		},
	}
	migrateCmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	migrateCmd.Flags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")
	migrateCmd.Flags().BoolVar(&down, "down", false, "Roll migrations back instead of applying them")
	rootCmd.AddCommand(migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createTransaction(args []string, transferType string) {
	amount, err := decimal.NewFromString(args[4])
	if err != nil || !amount.IsInteger() {
		fmt.Printf("Invalid amount %q: expected a whole number of minor units\n", args[4])
		os.Exit(1)
	}

	payload := map[string]any{
		"sender_number":   args[0],
		"sender_bank":     args[1],
		"receiver_number": args[2],
		"receiver_bank":   args[3],
		"amount":          amount.IntPart(),
		"type":            transferType,
	}

	body := doRequest(http.MethodPost, "/api/v1/transactions/", payload, http.StatusCreated)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Transaction created: %s\n", result["id"])
	if amt, ok := result["amount"].(float64); ok {
		fmt.Printf("Amount: %s\n", formatAmount(int64(amt)))
	}
	if fee, ok := result["fee"].(float64); ok {
		fmt.Printf("Fee: %s\n", formatAmount(int64(fee)))
	}
}

func listTransactions(path string, page int) {
	body := doRequest(http.MethodGet, fmt.Sprintf("%s?page=%d", path, page), nil, http.StatusOK)

	var result struct {
		TotalPages int `json:"total_pages"`
		CurPage    int `json:"cur_page"`
		Items      []struct {
			ID             string `json:"id"`
			SenderNumber   string `json:"sender_number"`
			ReceiverNumber string `json:"receiver_number"`
			Amount         int64  `json:"amount"`
			Fee            int64  `json:"fee"`
			Type           string `json:"type"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Page %d of %d\n", result.CurPage, result.TotalPages)
	for _, item := range result.Items {
		fmt.Printf("%s  %s -> %s  %s (fee %s)  %s\n",
			truncate(item.ID, 12),
			item.SenderNumber,
			item.ReceiverNumber,
			formatAmount(item.Amount),
			formatAmount(item.Fee),
			item.Type,
		)
	}
}

func getDetail(id string) {
	body := doRequest(http.MethodGet, "/api/v1/transactions/"+id, nil, http.StatusOK)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func deleteTransaction(id string) {
	doRequest(http.MethodDelete, "/api/v1/transactions/"+id, nil, http.StatusOK)
	fmt.Printf("Transaction %s hidden from history\n", id)
}

func runMigrations(databaseURL, migrationsPath string, down bool) {
	if databaseURL == "" {
		fmt.Println("DATABASE_URL or --database-url must be set")
		os.Exit(1)
	}

	var err error
	if down {
		err = postgres.RunMigrationsDown(databaseURL, migrationsPath)
	} else {
		err = postgres.RunMigrations(databaseURL, migrationsPath)
	}

	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	if down {
		fmt.Println("Migrations rolled back")
	} else {
		fmt.Println("Migrations applied")
	}
}

func generateToken(username, role string) {
	r := domain.Role(role)
	if !r.IsValid() {
		fmt.Printf("Invalid role %q: expected admin, operator or viewer\n", role)
		os.Exit(1)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("JWT_SECRET must be set")
		os.Exit(1)
	}

	manager := auth.NewJWTManager(secret, 24*time.Hour)
	signed, err := manager.Generate(&domain.User{Username: username, Role: r})
	if err != nil {
		fmt.Printf("Failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(signed)
}

func doRequest(method, path string, payload any, wantStatus int) []byte {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != wantStatus {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

// formatAmount renders a minor-unit amount with two decimal places.
func formatAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}

	return s[:max-3] + "..."
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}
