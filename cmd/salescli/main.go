package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"salespoint/internal/api"
	"salespoint/internal/config"
	"salespoint/internal/ledger"
	"salespoint/internal/model"
	"salespoint/internal/service"
	"salespoint/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	cfg := config.Load()

	store := &session.MemoryStore{}
	if cfg.Token != "" {
		_ = store.Save(cfg.Token)
	}
	sess := session.New(store)
	sess.OnLogout(func() {
		log.Println("Session ended, signed out")
	})

	client := api.New(cfg.BaseURL, cfg.Timeout, sess)
	account := service.NewAccount(client)
	collections := service.NewCollections(client, cfg.PageSize)
	confirm := stdinConfirmer()

	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "login":
		if len(os.Args) < 4 {
			log.Fatal("Usage: salescli login <email> <password>")
		}
		res, err := account.Login(ctx, model.Credentials{Email: os.Args[2], Password: os.Args[3]})
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		fmt.Printf("Signed in as %s\nToken: %s\n", res.User.Name, res.Token)

	case "profile":
		p, err := account.Profile(ctx)
		if err != nil {
			log.Fatalf("Failed to load profile: %v", err)
		}
		fmt.Printf("%s <%s> %s\n", p.Name, p.Email, p.Phone)

	case "products":
		listing, err := collections.Products(ctx)
		if err != nil {
			log.Fatalf("Failed to load products: %v", err)
		}
		if len(os.Args) > 2 {
			service.SearchProducts(listing, os.Args[2])
		}
		for _, p := range listing.Page(1) {
			fmt.Printf("%-12s %-10s %-30s %s\n", p.ID, p.SKU, p.Name, p.ReferencePrice.StringFixed(2))
		}
		fmt.Printf("%d product(s), %d page(s)\n", listing.Total(), listing.Pages())

	case "customers":
		listing, err := collections.Customers(ctx)
		if err != nil {
			log.Fatalf("Failed to load customers: %v", err)
		}
		for _, c := range listing.Page(1) {
			fmt.Printf("%-12s %-30s %s\n", c.ID, c.Name, c.Email)
		}
		fmt.Printf("%d customer(s), %d page(s)\n", listing.Total(), listing.Pages())

	case "cities":
		listing, err := collections.Cities(ctx)
		if err != nil {
			log.Fatalf("Failed to load cities: %v", err)
		}
		for _, city := range listing.Page(1) {
			fmt.Printf("%-12s %s\n", city.ID, city.Name)
		}
		fmt.Printf("%d city(ies), %d page(s)\n", listing.Total(), listing.Pages())

	case "brands":
		listing, err := collections.Brands(ctx)
		if err != nil {
			log.Fatalf("Failed to load brands: %v", err)
		}
		for _, b := range listing.Page(1) {
			fmt.Printf("%-12s %s\n", b.ID, b.Name)
		}
		fmt.Printf("%d brand(s), %d page(s)\n", listing.Total(), listing.Pages())

	case "settings":
		settings, err := client.Settings(ctx)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
		for k, v := range settings {
			fmt.Printf("%-30s %s\n", k, v)
		}

	case "invoice":
		if len(os.Args) < 4 || os.Args[2] != "show" {
			log.Fatal("Usage: salescli invoice show <id>")
		}
		editor := service.NewInvoiceEditor(client, confirm)
		if err := editor.OpenExisting(ctx, os.Args[3]); err != nil {
			log.Fatalf("Failed to open invoice: %v", err)
		}
		printDocument(editor.Header().InvoiceNumber, editor.Header().Status, editor)

	case "stock":
		if len(os.Args) < 4 {
			log.Fatal("Usage: salescli stock <show|post> <id>")
		}
		editor := service.NewStockEditor(client, confirm)
		if err := editor.OpenExisting(ctx, os.Args[3]); err != nil {
			log.Fatalf("Failed to open stock document: %v", err)
		}
		switch os.Args[2] {
		case "show":
			fmt.Printf("State: %s\n", editor.State())
			printDocument(editor.Header().DocumentNumber, editor.Header().Status, editor)
		case "post":
			doc, err := editor.Post(ctx)
			if err != nil {
				log.Fatalf("Post failed: %v", err)
			}
			fmt.Printf("Document %s posted (status %s)\n", doc.DocumentNumber, doc.Status)
		default:
			log.Fatal("Usage: salescli stock <show|post> <id>")
		}

	default:
		usage()
	}
}

// documentView is the slice of both editors the printer needs.
type documentView interface {
	Ledger() *ledger.Ledger
	Totals() ledger.Totals
}

func printDocument(number, status string, view documentView) {
	fmt.Printf("Document: %s  Status: %s\n", number, status)
	for _, row := range view.Ledger().Rows() {
		if !row.HasProduct() {
			continue
		}
		fmt.Printf("  %-10s %-30s x%-8s @ %-10s = %s\n",
			row.SKU, row.ProductName, row.Quantity().String(),
			row.UnitPrice.StringFixed(2), row.LineTotal.StringFixed(2))
	}
	totals := view.Totals()
	fmt.Printf("Totals: qty=%s price=%s discount=%s grand=%s\n",
		totals.Quantity.String(), totals.Price.StringFixed(2),
		totals.Discount.StringFixed(2), totals.GrandTotal.StringFixed(2))
}

func usage() {
	fmt.Println(`Usage: salescli <command>

Commands:
  login <email> <password>   sign in and print the bearer token
  profile                    show the signed-in profile
  products [query]           list products, optionally filtered
  customers                  list customers
  cities                     list cities
  brands                     list brands
  settings                   dump backend settings
  invoice show <id>          show an invoice with its lines and totals
  stock show <id>            show a stock document
  stock post <id>            post a stock document (asks for confirmation)`)
}

func stdinConfirmer() service.Confirmer {
	reader := bufio.NewReader(os.Stdin)
	return service.ConfirmerFunc(func(_ context.Context, prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}
