package jobs

import (
	"log"

	"wms.GO/config"
	"wms.GO/cron"
	stockRepo "wms.GO/model/repository/stock"
	"wms.GO/service/notify"
)

func init() {
	cron.Register("lowstockscan", "0 * * * *", LowStockScan)
}

// LowStockScan reports every ledger row whose available quantity sits below
// its safety stock, grouped per warehouse, to the configured alert address.
func LowStockScan(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("lowstockscan: db connect failed: %v", err)
		return
	}

	rows, err := stockRepo.NewStockRepository(db).AllBelowSafety()
	if err != nil {
		log.Printf("lowstockscan: query failed: %v", err)
		return
	}
	if len(rows) == 0 {
		log.Println("lowstockscan: no products below safety stock")
		return
	}

	byWarehouse := make(map[string][]notify.LowStockProduct)
	for _, row := range rows {
		byWarehouse[row.WarehouseName] = append(byWarehouse[row.WarehouseName], notify.LowStockProduct{
			ProductName:  row.ProductName,
			CurrentStock: row.Available,
			SafetyStock:  row.SafetyStock,
		})
	}

	gateway := notify.NewGateway()
	recipient := notify.Recipient{Name: "operations", Email: config.Get().LowStockAlertEmail}
	for warehouse, products := range byWarehouse {
		if err := gateway.NotifyLowStock(recipient, products); err != nil {
			log.Printf("lowstockscan: notification for warehouse %s failed: %v", warehouse, err)
		}
	}
	log.Printf("lowstockscan: reported %d low rows across %d warehouses", len(rows), len(byWarehouse))
}
