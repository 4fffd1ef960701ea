package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"farmapos/internal/config"
	"farmapos/internal/gqlclient"
	"farmapos/internal/model"
	"farmapos/internal/receipt"
	"farmapos/internal/service"
	"farmapos/internal/tokenstore"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// defaultIGV is the tax rate pre-selected on the sale screen.
var defaultIGV = decimal.NewFromInt(18)

type app struct {
	session   *service.Session
	catalog   *service.Catalog
	cart      *service.Cart
	scanner   *service.Scanner
	sales     *service.SaleService
	purchases *service.PurchaseService
	cash      *service.CashService
	products  *service.ProductService
	contacts  *service.ContactService

	in *bufio.Scanner
}

func main() {
	// Console writer for the terminal; level depends on APP_ENV.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	store := tokenstore.New(cfg.TokenDir)
	client := gqlclient.New(cfg.GraphQLEndpoint, store,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second)

	cart := service.NewSaleCart()
	a := &app{
		session:   service.NewSession(client, store),
		catalog:   service.NewCatalog(client),
		cart:      cart,
		sales:     service.NewSaleService(client, cfg.SubsidiaryID, receipt.NewWriter(cfg.ReceiptStoragePath)),
		purchases: service.NewPurchaseService(client),
		cash:      service.NewCashService(client, cfg.SubsidiaryID),
		products:  service.NewProductService(client),
		contacts:  service.NewContactService(client),
		in:        bufio.NewScanner(os.Stdin),
	}
	a.scanner = service.NewScanner(
		time.Duration(cfg.ScanDebounceMillis)*time.Millisecond,
		func(p model.Product, qty int) {
			if err := cart.AddProduct(p, qty, decimal.Zero, defaultIGV); err != nil {
				fmt.Println("  !", err)
				return
			}
			fmt.Printf("  + %s x%d (escaneado)\n", p.Name, qty)
		},
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("endpoint", cfg.GraphQLEndpoint).Msg("FarmaPOS iniciando")
	a.session.Restore(ctx)
	a.run(ctx)
	log.Info().Msg("FarmaPOS cerrado")
}

func (a *app) run(ctx context.Context) {
	for ctx.Err() == nil {
		switch service.Gate(a.session.State()) {
		case service.GateWait:
			fmt.Println("Cargando sesión…")
			time.Sleep(200 * time.Millisecond)
		case service.GateRedirect:
			if !a.loginScreen(ctx) {
				return
			}
		case service.GateAllow:
			if !a.mainMenu(ctx) {
				return
			}
		}
	}
}

// loginScreen blocks until a session exists or the operator quits.
// Returns false to exit the app.
func (a *app) loginScreen(ctx context.Context) bool {
	fmt.Println("\n── FarmaPOS ── [1] Ingresar  [2] Registrarse  [0] Salir")
	switch a.prompt("> ") {
	case "1":
		username := a.prompt("Usuario: ")
		password := a.prompt("Contraseña: ")
		result, err := a.session.Login(ctx, username, password)
		if err != nil {
			fmt.Println("Error de conexión:", err)
			return true
		}
		if !result.Success {
			for _, fe := range result.Errors {
				fmt.Println("  !", fe.Error())
			}
			return true
		}
		fmt.Printf("Bienvenido, %s\n", result.User.Username)
		if err := a.catalog.Refresh(ctx); err != nil {
			fmt.Println("No se pudo cargar el catálogo:", err)
		}
	case "2":
		form := service.RegisterForm{
			Username:  a.prompt("Usuario: "),
			Email:     a.prompt("Email: "),
			Password1: a.prompt("Contraseña: "),
			Password2: a.prompt("Repetir contraseña: "),
			FirstName: a.prompt("Nombre: "),
			LastName:  a.prompt("Apellido: "),
		}
		result, err := a.session.Register(ctx, form)
		if err != nil {
			fmt.Println("Error de conexión:", err)
			return true
		}
		if !result.Success {
			for _, fe := range result.Errors {
				fmt.Println("  !", fe.Error())
			}
		}
	case "0":
		return false
	}
	return true
}

// mainMenu is one iteration of the authenticated menu. Returns false to
// exit the app.
func (a *app) mainMenu(ctx context.Context) bool {
	fmt.Println("\n[1] Buscar/escanear  [2] Carrito  [3] Cobrar venta  [4] Compra nueva")
	fmt.Println("[5] Caja  [6] Listados  [7] Cerrar sesión  [0] Salir")
	switch a.prompt("> ") {
	case "1":
		a.searchScreen()
	case "2":
		a.cartScreen()
	case "3":
		a.checkoutScreen(ctx)
	case "4":
		a.purchaseScreen(ctx)
	case "5":
		a.cashScreen(ctx)
	case "6":
		a.listScreen(ctx)
	case "7":
		a.session.Logout(ctx)
		a.cart.Clear()
		fmt.Println("Sesión cerrada")
	case "0":
		return false
	}
	return true
}

// searchScreen drives catalog lookup. A barcode-shaped query with a
// single exact match arms the scanner auto-add; Enter on an empty line
// confirms it immediately.
func (a *app) searchScreen() {
	fmt.Println("Buscar producto (vacío para volver):")
	for {
		query := a.prompt("buscar> ")
		if query == "" {
			a.scanner.Confirm()
			a.scanner.Reset()
			return
		}
		matches := a.catalog.Search(query)
		a.scanner.Observe(query, matches, 1)
		if len(matches) == 0 {
			fmt.Println("  sin resultados")
			continue
		}
		for i, p := range matches {
			if i == 10 {
				fmt.Printf("  … y %d más\n", len(matches)-10)
				break
			}
			fmt.Printf("  [%d] %s (%s) S/ %s — stock %d\n", i+1, p.Name, p.Code, p.Price.StringFixed(2), p.Quantity)
		}
		if service.IsBarcode(query) {
			// Give the debounce a chance to fire before the next prompt.
			time.Sleep(350 * time.Millisecond)
			continue
		}
		if idx, err := strconv.Atoi(a.prompt("agregar #: ")); err == nil && idx >= 1 && idx <= len(matches) {
			qty, _ := strconv.Atoi(a.prompt("cantidad: "))
			if err := a.cart.AddProduct(matches[idx-1], qty, decimal.Zero, defaultIGV); err != nil {
				fmt.Println("  !", err)
			} else {
				a.scanner.Reset()
				fmt.Println("  + agregado")
			}
		}
	}
}

func (a *app) cartScreen() {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("Carrito vacío")
		return
	}
	for _, l := range lines {
		fmt.Printf("  %s  x%d  S/ %s  (IGV %s%%, sin IGV S/ %s)\n",
			l.Product.Name, l.Quantity, l.Total.StringFixed(2),
			l.IGVPct.StringFixed(0), l.SubtotalExTax().StringFixed(2))
	}
	fmt.Printf("TOTAL: S/ %s\n", a.cart.GrandTotal().StringFixed(2))

	switch a.prompt("[c]antidad / [p]recio / [q]uitar / Enter volver: ") {
	case "c":
		id := a.prompt("id producto: ")
		qty, _ := strconv.Atoi(a.prompt("nueva cantidad: "))
		if err := a.cart.UpdateQuantity(id, qty); err != nil {
			fmt.Println("  !", err)
		}
	case "p":
		id := a.prompt("id producto: ")
		if price, err := decimal.NewFromString(a.prompt("nuevo precio: ")); err == nil {
			if err := a.cart.UpdateUnitPrice(id, price); err != nil {
				fmt.Println("  !", err)
			}
		}
	case "q":
		a.cart.Remove(a.prompt("id producto: "))
	}
}

func (a *app) checkoutScreen(ctx context.Context) {
	opts := service.CheckoutOptions{
		TypeReceipt: a.chooseReceipt(),
		TypePay:     a.choosePay(),
		Date:        a.prompt("Fecha (YYYY-MM-DD, vacío = hoy): "),
	}
	sale, err := a.sales.Checkout(ctx, a.cart, opts)
	if err != nil {
		fmt.Println("  !", err)
		return
	}
	fmt.Printf("Venta %s registrada. Total S/ %s\n", sale.ID, sale.Total.StringFixed(2))
	if err := a.catalog.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo refrescar el catálogo")
	}
}

func (a *app) purchaseScreen(ctx context.Context) {
	cart := service.NewPurchaseCart()
	fmt.Println("Compra nueva — agregue productos (vacío para terminar):")
	for {
		query := a.prompt("producto> ")
		if query == "" {
			break
		}
		matches := a.catalog.Search(query)
		if len(matches) == 0 {
			fmt.Println("  sin resultados")
			continue
		}
		p := matches[0]
		qty, _ := strconv.Atoi(a.prompt("cantidad: "))
		price, err := decimal.NewFromString(a.prompt("precio unitario: "))
		if err != nil {
			price = p.Price
		}
		if err := cart.AddProduct(p, qty, price, decimal.Zero); err != nil {
			fmt.Println("  !", err)
		}
	}
	if cart.Len() == 0 {
		return
	}
	opts := service.CheckoutOptions{
		TypeReceipt: a.chooseReceipt(),
		TypePay:     a.choosePay(),
		Date:        a.prompt("Fecha (YYYY-MM-DD, vacío = hoy): "),
	}
	result, err := a.purchases.Checkout(ctx, cart, opts)
	if err != nil {
		fmt.Println("  !", err)
		if result != nil {
			for _, lr := range result.Lines {
				if lr.Err != nil {
					fmt.Printf("  falló %s: %v\n", lr.ProductName, lr.Err)
				}
			}
		}
		return
	}
	fmt.Printf("Compra registrada: %d líneas\n", len(result.Lines))
}

func (a *app) cashScreen(ctx context.Context) {
	current, err := a.cash.CurrentSession(ctx)
	if err != nil {
		fmt.Println("  !", err)
		return
	}
	if current == nil {
		fmt.Println("No hay caja abierta.")
		if amount, err := decimal.NewFromString(a.prompt("Monto inicial para abrir (vacío para cancelar): ")); err == nil {
			opened, err := a.cash.Open(ctx, amount)
			if err != nil {
				fmt.Println("  !", err)
				return
			}
			fmt.Printf("Caja %s abierta con S/ %s\n", opened.ID, opened.InitialAmount.StringFixed(2))
		}
		return
	}

	fmt.Printf("Caja %s abierta desde %s — inicial S/ %s\n",
		current.ID, current.DateOpen, current.InitialAmount.StringFixed(2))
	switch a.prompt("[m]ovimientos / [g]asto / [c]errar / Enter volver: ") {
	case "m":
		payments, err := a.cash.Payments(ctx)
		if err != nil {
			fmt.Println("  !", err)
			return
		}
		for _, p := range payments {
			fmt.Printf("  %s %s S/ %s (%s)\n", p.PaymentDate, p.PaymentType, p.PaidAmount.StringFixed(2), p.PaymentMethod)
		}
	case "g":
		amount, err := decimal.NewFromString(a.prompt("monto: "))
		if err != nil {
			return
		}
		if _, err := a.cash.RecordExpense(ctx, a.choosePay(), amount, a.prompt("nota: ")); err != nil {
			fmt.Println("  !", err)
		}
	case "c":
		counted, err := decimal.NewFromString(a.prompt("monto contado: "))
		if err != nil {
			return
		}
		closed, summary, err := a.cash.Close(ctx, counted)
		if err != nil {
			fmt.Println("  !", err)
			return
		}
		fmt.Printf("Caja %s cerrada.\n", closed.ID)
		if summary != nil {
			for _, m := range summary.ByMethod {
				fmt.Printf("  %s esperado: S/ %s\n", m.Method, m.Total.StringFixed(2))
			}
			fmt.Printf("  Esperado S/ %s / Contado S/ %s / Diferencia S/ %s\n",
				summary.TotalExpected.StringFixed(2),
				summary.TotalCounted.StringFixed(2),
				summary.Difference.StringFixed(2))
		}
	}
}

func (a *app) listScreen(ctx context.Context) {
	switch a.prompt("[v]entas / [c]ompras / [p]roductos / [cl]ientes / [caja]s: ") {
	case "v":
		sales, err := a.sales.List(ctx)
		if err != nil {
			fmt.Println("  !", err)
			return
		}
		for _, s := range sales {
			fmt.Printf("  %s  %s  S/ %s  (%d líneas)\n", s.DateCreation, s.TypeReceipt, s.Total.StringFixed(2), len(s.Details))
		}
	case "c":
		purchases, err := a.purchases.List(ctx)
		if err != nil {
			fmt.Println("  !", err)
			return
		}
		for _, p := range purchases {
			fmt.Printf("  %s  %s x%d  S/ %s\n", p.Date, p.Product.Name, p.Quantity, p.Total.StringFixed(2))
		}
	case "p":
		products, err := a.products.List(ctx)
		if err != nil {
			fmt.Println("  !", err)
			return
		}
		for _, p := range products {
			fmt.Printf("  %s (%s)  S/ %s  stock %d\n", p.Name, p.Code, p.Price.StringFixed(2), p.Quantity)
		}
	case "cl":
		contacts, err := a.contacts.List(ctx)
		if err != nil {
			fmt.Println("  !", err)
			return
		}
		for _, c := range contacts {
			fmt.Printf("  %s  %s %s  (%s)\n", c.Name, c.TypeDocument, c.NDocument, c.TypePerson)
		}
	case "cajas":
		cashes, err := a.cash.History(ctx)
		if err != nil {
			fmt.Println("  !", err)
			return
		}
		for _, cs := range cashes {
			fmt.Printf("  %s  %s  inicial S/ %s\n", cs.DateOpen, cs.Status, cs.InitialAmount.StringFixed(2))
		}
	}
}

func (a *app) chooseReceipt() string {
	switch a.prompt("Comprobante [b]oleta / [f]actura / [t]icket: ") {
	case "b":
		return model.ReceiptBoleta
	case "f":
		return model.ReceiptFactura
	case "t":
		return model.ReceiptTicket
	}
	return ""
}

func (a *app) choosePay() string {
	switch a.prompt("Pago [e]fectivo / [y]ape / [p]lin: ") {
	case "e":
		return model.PayEfectivo
	case "y":
		return model.PayYape
	case "p":
		return model.PayPlin
	}
	return ""
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}
