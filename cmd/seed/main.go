// Command seed loads a small set of demo data: vendors, customers, parts,
// a couple of jobs, and an open purchase order. Intended for development
// databases only.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stephenrocksolid/shopmgr/internal/config"
	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
	"github.com/stephenrocksolid/shopmgr/internal/shop/service"
)

func main() {
	wipe := flag.Bool("wipe", false, "delete existing shop data before seeding")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.Vendor{},
		&entity.Customer{},
		&entity.Engine{},
		&entity.Part{},
		&entity.Job{},
		&entity.PurchaseOrder{},
		&entity.Item{},
		&entity.Receiving{},
		&entity.Notification{},
		&entity.Attachment{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if *wipe {
		for _, table := range []string{
			"shop_receivings", "shop_po_items", "shop_purchase_orders",
			"shop_jobs", "shop_engines", "shop_parts",
			"shop_customers", "shop_vendors", "shop_notifications",
		} {
			db.Exec("DELETE FROM " + table)
		}
		log.Println("Existing shop data wiped")
	}

	ctx := context.Background()
	repos := repository.NewRepositories(db)

	// Vendors
	vendors := []entity.Vendor{
		{ID: uuid.New().String(), Code: "MAHLE", Name: "MAHLE Aftermarket", Contact: "Sales Desk", Phone: "800-255-1942", City: "Olive Branch", State: "MS", Status: entity.VendorStatusActive},
		{ID: uuid.New().String(), Code: "CLEV", Name: "Clevite Engine Parts", Phone: "800-338-8786", City: "Ann Arbor", State: "MI", Status: entity.VendorStatusActive},
		{ID: uuid.New().String(), Code: "FEDM", Name: "Federal-Mogul Motorparts", City: "Southfield", State: "MI", Status: entity.VendorStatusActive},
	}
	for i := range vendors {
		if err := db.Create(&vendors[i]).Error; err != nil {
			log.Fatalf("Failed to seed vendor %s: %v", vendors[i].Code, err)
		}
	}

	// Customers with engines
	customers := []entity.Customer{
		{ID: uuid.New().String(), Name: "Dale Hutchins", Company: "Hutchins Trucking", Phone: "417-555-0148", City: "Springfield", State: "MO"},
		{ID: uuid.New().String(), Name: "Marty Kessler", Phone: "417-555-0723", City: "Nixa", State: "MO"},
	}
	for i := range customers {
		if err := db.Create(&customers[i]).Error; err != nil {
			log.Fatalf("Failed to seed customer: %v", err)
		}
	}
	engine := entity.Engine{
		ID:           uuid.New().String(),
		CustomerID:   &customers[0].ID,
		Make:         "Cummins",
		Model:        "ISX15",
		SerialNumber: "79340112",
		Cylinders:    6,
	}
	if err := db.Create(&engine).Error; err != nil {
		log.Fatalf("Failed to seed engine: %v", err)
	}

	// Parts
	parts := []entity.Part{
		{ID: uuid.New().String(), PartNumber: "224-3441", Name: "Piston Kit", Manufacturer: "MAHLE", Category: "pistons", UnitCost: decimal.NewFromFloat(212.50), QuantityOnHand: decimal.NewFromInt(4), ReorderLevel: decimal.NewFromInt(6)},
		{ID: uuid.New().String(), PartNumber: "MS-2034P", Name: "Main Bearing Set", Manufacturer: "Clevite", Category: "bearings", UnitCost: decimal.NewFromFloat(148.00), QuantityOnHand: decimal.NewFromInt(2), ReorderLevel: decimal.NewFromInt(2)},
		{ID: uuid.New().String(), PartNumber: "HS54580", Name: "Head Gasket Set", Manufacturer: "Fel-Pro", Category: "gaskets", UnitCost: decimal.NewFromFloat(96.75), QuantityOnHand: decimal.NewFromInt(10)},
	}
	for i := range parts {
		if err := db.Create(&parts[i]).Error; err != nil {
			log.Fatalf("Failed to seed part %s: %v", parts[i].PartNumber, err)
		}
	}

	// Jobs
	notificationSvc := service.NewNotificationService(repos.Notification)
	jobSvc := service.NewJobService(repos.Job, repos.Customer, repos.Engine, notificationSvc)
	job, err := jobSvc.CreateJob(ctx, &service.CreateJobRequest{
		CustomerID:  &customers[0].ID,
		EngineID:    &engine.ID,
		Description: "In-frame overhaul, check crank journals",
		AssignedTo:  "shop-floor",
	})
	if err != nil {
		log.Fatalf("Failed to seed job: %v", err)
	}

	// An open purchase order with two lines
	purchasingSvc := service.NewPurchasingService(
		repos.PO, repos.Vendor, repos.Part, repos.Customer, notificationSvc, cfg.Shop)
	po, err := purchasingSvc.CreatePO(ctx, "seed", &service.CreatePORequest{
		VendorID: &vendors[0].ID,
		Notes:    "Parts for " + job.JobNumber,
	})
	if err != nil {
		log.Fatalf("Failed to seed purchase order: %v", err)
	}
	for _, line := range []struct {
		part *entity.Part
		qty  int64
	}{
		{&parts[0], 6},
		{&parts[1], 1},
	} {
		if _, err := purchasingSvc.AddItem(ctx, po.ID, &service.AddItemRequest{
			PartID:   &line.part.ID,
			Quantity: decimal.NewFromInt(line.qty),
		}); err != nil {
			log.Fatalf("Failed to seed PO line: %v", err)
		}
	}
	if _, err := purchasingSvc.SubmitPO(ctx, po.ID); err != nil {
		log.Fatalf("Failed to submit seeded PO: %v", err)
	}

	log.Printf("Seeded %d vendors, %d customers, %d parts, job %s, PO %s",
		len(vendors), len(customers), len(parts), job.JobNumber, po.PONumber)
}
