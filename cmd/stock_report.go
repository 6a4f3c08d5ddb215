package cmd

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"

	"wms.GO/config"
)

var reportWarehouseID uint

// warehouseReportRow is decoded from the raw aggregate query. Column types
// vary by driver (int64, uint64, []byte), so decoding is weakly typed.
type warehouseReportRow struct {
	WarehouseID   uint   `mapstructure:"warehouse_id"`
	WarehouseName string `mapstructure:"warehouse_name"`
	ProductCount  int64  `mapstructure:"product_count"`
	TotalQuantity int64  `mapstructure:"total_quantity"`
	TotalReserved int64  `mapstructure:"total_reserved"`
	LowCount      int64  `mapstructure:"low_count"`
}

var stockReportCmd = &cobra.Command{
	Use:   "stock:report",
	Short: "Print a per-warehouse stock summary",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		query := `
			SELECT s.warehouse_id,
			       w.name AS warehouse_name,
			       COUNT(*) AS product_count,
			       SUM(s.quantity) AS total_quantity,
			       SUM(s.reserved_quantity) AS total_reserved,
			       SUM(CASE WHEN s.quantity - s.reserved_quantity < s.safety_stock THEN 1 ELSE 0 END) AS low_count
			FROM warehouse_stock s
			JOIN warehouse w ON w.warehouse_id = s.warehouse_id AND w.deleted_at IS NULL
			GROUP BY s.warehouse_id, w.name
			ORDER BY s.warehouse_id`
		if reportWarehouseID > 0 {
			query = `
			SELECT s.warehouse_id,
			       w.name AS warehouse_name,
			       COUNT(*) AS product_count,
			       SUM(s.quantity) AS total_quantity,
			       SUM(s.reserved_quantity) AS total_reserved,
			       SUM(CASE WHEN s.quantity - s.reserved_quantity < s.safety_stock THEN 1 ELSE 0 END) AS low_count
			FROM warehouse_stock s
			JOIN warehouse w ON w.warehouse_id = s.warehouse_id AND w.deleted_at IS NULL
			WHERE s.warehouse_id = ?
			GROUP BY s.warehouse_id, w.name`
		}

		var raw []map[string]interface{}
		tx := db.Raw(query)
		if reportWarehouseID > 0 {
			tx = db.Raw(query, reportWarehouseID)
		}
		if err := tx.Scan(&raw).Error; err != nil {
			fmt.Printf("Report query failed: %v\n", err)
			return
		}
		if len(raw) == 0 {
			fmt.Println("No stock records found.")
			return
		}

		fmt.Println("=== Stock Report ===")
		for _, m := range raw {
			var row warehouseReportRow
			dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				WeaklyTypedInput: true,
				Result:           &row,
			})
			if err != nil {
				fmt.Printf("Decoder setup failed: %v\n", err)
				return
			}
			if err := dec.Decode(m); err != nil {
				fmt.Printf("  [warn] skipping row: %v\n", err)
				continue
			}
			fmt.Printf("Warehouse #%d %s\n", row.WarehouseID, row.WarehouseName)
			fmt.Printf("  products:  %d\n", row.ProductCount)
			fmt.Printf("  quantity:  %d (reserved %d, available %d)\n",
				row.TotalQuantity, row.TotalReserved, row.TotalQuantity-row.TotalReserved)
			fmt.Printf("  below safety stock: %d\n", row.LowCount)
		}
		fmt.Println("====================")
	},
}

func init() {
	stockReportCmd.Flags().UintVarP(&reportWarehouseID, "warehouse", "w", 0, "Limit the report to one warehouse ID")
	rootCmd.AddCommand(stockReportCmd)
}
