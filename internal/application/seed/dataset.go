package seed

// Dataset datos a cargar. Las referencias entre registros van por nombre (categoría,
// proveedor, área), SKU (producto) y username (usuario), así un fixture JSON no necesita ids.
type Dataset struct {
	Users      []UserSeed     `json:"users"`
	Categories []CategorySeed `json:"categories"`
	Suppliers  []SupplierSeed `json:"suppliers"`
	Areas      []AreaSeed     `json:"storage_areas"`
	Products   []ProductSeed  `json:"products"`
	Stock      []StockSeed    `json:"stock"`
	Movements  []MovementSeed `json:"movements"`
}

type UserSeed struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type CategorySeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SupplierSeed struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

type AreaSeed struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int64  `json:"capacity"`
}

type ProductSeed struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Supplier      string `json:"supplier"`
	MinStockLevel int64  `json:"min_stock_level"`
}

type StockSeed struct {
	SKU      string `json:"sku"`
	Area     string `json:"area"`
	Quantity int64  `json:"quantity"`
}

// MovementSeed se registra a través del motor de movimientos, con su validación de stock.
type MovementSeed struct {
	SKU      string `json:"sku"`
	From     string `json:"from"`
	To       string `json:"to"`
	Quantity int64  `json:"quantity"`
	Status   string `json:"status"`
	Username string `json:"username"`
}

// DemoDataset datos de demostración: 3 usuarios, 2 categorías, 2 proveedores, 5 áreas,
// 9 productos, stock inicial y 5 movimientos. Receiving arranca con el stock que
// necesitan los movimientos que salen de ella.
func DemoDataset() Dataset {
	return Dataset{
		Users: []UserSeed{
			{Username: "admin", Password: "admin123", FullName: "Admin User", Role: "admin"},
			{Username: "manager", Password: "manager123", FullName: "Manager User", Role: "manager"},
			{Username: "worker", Password: "worker123", FullName: "Worker User", Role: "worker"},
		},
		Categories: []CategorySeed{
			{Name: "Electronics", Description: "Electronic devices and accessories"},
			{Name: "Accessories", Description: "Various accessories for electronic devices"},
		},
		Suppliers: []SupplierSeed{
			{Name: "Tech Solutions Inc.", ContactName: "John Smith", Email: "john@techsolutions.com", Phone: "555-1234", Address: "123 Tech St, San Francisco, CA"},
			{Name: "Accessory World", ContactName: "Jane Doe", Email: "jane@accessoryworld.com", Phone: "555-5678", Address: "456 Market St, San Francisco, CA"},
		},
		Areas: []AreaSeed{
			{Name: "Zone A", Description: "Main storage area for electronics", Capacity: 1000},
			{Name: "Zone B", Description: "Storage for accessories", Capacity: 2000},
			{Name: "Zone C", Description: "Overflow storage area", Capacity: 1500},
			{Name: "Receiving", Description: "Receiving area for new inventory", Capacity: 500},
			{Name: "Shipping Area", Description: "Area for items ready to be shipped", Capacity: 500},
		},
		Products: []ProductSeed{
			{SKU: "WH-BT-001", Name: "Wireless Headphones", Description: "Premium wireless headphones with noise cancellation", Category: "Electronics", Supplier: "Tech Solutions Inc.", MinStockLevel: 20},
			{SKU: "WE-BT-002", Name: "Wireless Earbuds", Description: "Compact wireless earbuds with charging case", Category: "Electronics", Supplier: "Tech Solutions Inc.", MinStockLevel: 20},
			{SKU: "LS-001", Name: "Laptop Stand", Description: "Adjustable aluminum laptop stand", Category: "Accessories", Supplier: "Accessory World", MinStockLevel: 30},
			{SKU: "UC-001", Name: "USB-C Cables", Description: "USB-C to USB-C fast charging cables, 6ft", Category: "Accessories", Supplier: "Accessory World", MinStockLevel: 30},
			{SKU: "KB-WL-001", Name: "Wireless Keyboard", Description: "Slim wireless keyboard with numeric keypad", Category: "Electronics", Supplier: "Tech Solutions Inc.", MinStockLevel: 15},
			{SKU: "SP-BT-001", Name: "Bluetooth Speakers", Description: "Portable Bluetooth speakers with 20hr battery life", Category: "Electronics", Supplier: "Tech Solutions Inc.", MinStockLevel: 15},
			{SKU: "HDMI-001", Name: "HDMI Cables", Description: "4K HDMI cables, 3ft", Category: "Accessories", Supplier: "Accessory World", MinStockLevel: 30},
			{SKU: "PC-001", Name: "Phone Chargers", Description: "Fast charging wall adapters", Category: "Electronics", Supplier: "Tech Solutions Inc.", MinStockLevel: 15},
			{SKU: "LB-001", Name: "Laptop Bags", Description: "Padded laptop bags with multiple compartments", Category: "Accessories", Supplier: "Accessory World", MinStockLevel: 20},
		},
		Stock: []StockSeed{
			{SKU: "WH-BT-001", Area: "Zone A", Quantity: 50},
			{SKU: "WE-BT-002", Area: "Zone A", Quantity: 5},
			{SKU: "LS-001", Area: "Zone B", Quantity: 80},
			{SKU: "LS-001", Area: "Receiving", Quantity: 50},
			{SKU: "UC-001", Area: "Zone C", Quantity: 100},
			{SKU: "KB-WL-001", Area: "Zone A", Quantity: 32},
			{SKU: "SP-BT-001", Area: "Zone B", Quantity: 30},
			{SKU: "SP-BT-001", Area: "Receiving", Quantity: 30},
			{SKU: "HDMI-001", Area: "Zone C", Quantity: 8},
			{SKU: "PC-001", Area: "Zone B", Quantity: 12},
			{SKU: "LB-001", Area: "Zone A", Quantity: 14},
		},
		Movements: []MovementSeed{
			{SKU: "WH-BT-001", From: "Zone A", To: "Shipping Area", Quantity: 24, Status: "completed", Username: "admin"},
			{SKU: "LS-001", From: "Receiving", To: "Zone B", Quantity: 50, Status: "completed", Username: "admin"},
			{SKU: "UC-001", From: "Zone C", To: "Zone A", Quantity: 100, Status: "pending", Username: "admin"},
			{SKU: "KB-WL-001", From: "Zone A", To: "Shipping Area", Quantity: 12, Status: "completed", Username: "admin"},
			{SKU: "SP-BT-001", From: "Receiving", To: "Zone B", Quantity: 30, Status: "in_progress", Username: "admin"},
		},
	}
}
