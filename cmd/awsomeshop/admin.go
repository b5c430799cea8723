package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/awsomeshop/awsomeshop/internal/i18n"
	"github.com/awsomeshop/awsomeshop/internal/services"
)

func adminUsage() {
	fmt.Fprintf(os.Stderr, `awsomeshop admin
Usage:
  admin users    list [-active true|false]
  admin users    create -name <name> -email <email> -phone <digits>
  admin users    depart -id <user id>
  admin products list [-status active|inactive]
  admin products create -name <name> [-image <url>] -points <n> -stock <n>
  admin products update -id <id> [-name ...] [-image ...] [-points n] [-stock n]
  admin products status -id <id> -status <active|inactive>
  admin products import -file <markdown table|->
  admin points   grant  -user <id> -amount <n> -reason <text>
  admin points   deduct -user <id> -amount <n> -reason <text>
  admin points   batch-grant -file <markdown table|->
  admin orders   list [-status preparing|delivered] [-user <id>]
  admin orders   batch-status -file <order numbers|-> -status <preparing|delivered>
  admin reports  grants|balances|redemptions
`)
	os.Exit(2)
}

func (a *app) cmdAdmin(ctx context.Context, args []string) {
	if len(args) < 2 {
		adminUsage()
	}

	switch args[0] {
	case "users":
		a.adminUsers(ctx, args[1], args[2:])
	case "products":
		a.adminProducts(ctx, args[1], args[2:])
	case "points":
		a.adminPoints(ctx, args[1], args[2:])
	case "orders":
		a.adminOrders(ctx, args[1], args[2:])
	case "reports":
		a.adminReports(ctx, args[1])
	default:
		adminUsage()
	}
}

func (a *app) adminUsers(ctx context.Context, sub string, args []string) {
	a.page("/admin/users")

	switch sub {
	case "list":
		fs := flag.NewFlagSet("admin users list", flag.ExitOnError)
		active := fs.String("active", "", "filter by active flag (true|false)")
		_ = fs.Parse(args)

		var isActive *bool
		switch *active {
		case "true":
			v := true
			isActive = &v
		case "false":
			v := false
			isActive = &v
		}

		users, err := a.admin.ListEmployees(ctx, isActive)
		if err != nil {
			a.fail(err)
		}
		for _, u := range users {
			state := "active"
			if !u.IsActive {
				state = "inactive"
			}
			fmt.Printf("%-5d %-20s %-30s %-8s %6d pts  %s\n", u.ID, u.FullName, u.Email, u.Role, u.PointsBalance, state)
		}

	case "create":
		fs := flag.NewFlagSet("admin users create", flag.ExitOnError)
		name := fs.String("name", "", "full name")
		email := fs.String("email", "", "email")
		phone := fs.String("phone", "", "phone number")
		_ = fs.Parse(args)
		if *name == "" || *email == "" || *phone == "" {
			fmt.Fprintln(os.Stderr, "need -name, -email and -phone")
			os.Exit(1)
		}

		user, err := a.admin.CreateEmployee(ctx, services.CreateEmployeeRequest{
			FullName: *name,
			Email:    *email,
			Phone:    *phone,
		})
		if err != nil {
			a.fail(err)
		}
		a.notify.Success("employee created",
			fmt.Sprintf("#%d %s; initial password is the last 6 digits of the phone number", user.ID, user.Email))

	case "depart":
		fs := flag.NewFlagSet("admin users depart", flag.ExitOnError)
		id := fs.Uint("id", 0, "user id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}

		if err := a.admin.SetEmployeeStatus(ctx, *id, false); err != nil {
			a.fail(err)
		}
		a.notify.Success("employee set to inactive", "remaining points were invalidated")

	default:
		adminUsage()
	}
}

func (a *app) adminProducts(ctx context.Context, sub string, args []string) {
	a.page("/admin/products")

	switch sub {
	case "list":
		fs := flag.NewFlagSet("admin products list", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		_ = fs.Parse(args)

		products, err := a.admin.ListProducts(ctx, *status)
		if err != nil {
			a.fail(err)
		}
		for _, p := range products {
			fmt.Printf("%-5d %-30s %6d pts  stock %-5d %s\n", p.ID, p.Name, p.PointsRequired, p.StockQuantity, p.Status)
		}

	case "create":
		fs := flag.NewFlagSet("admin products create", flag.ExitOnError)
		name := fs.String("name", "", "product name")
		image := fs.String("image", "", "image url")
		points := fs.Int("points", 0, "points required")
		stock := fs.Int("stock", 0, "stock quantity")
		_ = fs.Parse(args)
		if *name == "" || *points <= 0 {
			fmt.Fprintln(os.Stderr, "need -name and a positive -points")
			os.Exit(1)
		}

		product, err := a.admin.CreateProduct(ctx, services.CreateProductRequest{
			Name:           *name,
			ImageURL:       *image,
			PointsRequired: *points,
			StockQuantity:  *stock,
		})
		if err != nil {
			a.fail(err)
		}
		a.notify.Success("product created", fmt.Sprintf("#%d %s", product.ID, product.Name))

	case "update":
		fs := flag.NewFlagSet("admin products update", flag.ExitOnError)
		id := fs.Uint("id", 0, "product id")
		name := fs.String("name", "", "new name")
		image := fs.String("image", "", "new image url")
		points := fs.Int("points", -1, "new points price")
		stock := fs.Int("stock", -1, "new stock quantity")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}

		var req services.UpdateProductRequest
		if *name != "" {
			req.Name = name
		}
		if *image != "" {
			req.ImageURL = image
		}
		if *points >= 0 {
			req.PointsRequired = points
		}
		if *stock >= 0 {
			req.StockQuantity = stock
		}

		product, err := a.admin.UpdateProduct(ctx, *id, req)
		if err != nil {
			a.fail(err)
		}
		a.notify.Success("product updated", fmt.Sprintf("#%d %s, %d pts", product.ID, product.Name, product.PointsRequired))

	case "status":
		fs := flag.NewFlagSet("admin products status", flag.ExitOnError)
		id := fs.Uint("id", 0, "product id")
		status := fs.String("status", "", "active|inactive")
		_ = fs.Parse(args)
		if *id == 0 || *status == "" {
			fmt.Fprintln(os.Stderr, "need -id and -status")
			os.Exit(1)
		}

		if err := a.admin.SetProductStatus(ctx, *id, *status); err != nil {
			a.fail(err)
		}
		a.notify.Success("product status updated", *status)

	case "import":
		fs := flag.NewFlagSet("admin products import", flag.ExitOnError)
		file := fs.String("file", "", "markdown table file ('-'=stdin)")
		_ = fs.Parse(args)
		if *file == "" {
			fmt.Fprintln(os.Stderr, "need -file")
			os.Exit(1)
		}

		markdown, err := readInput(*file)
		if err != nil {
			a.fail(err)
		}
		products, err := a.admin.BatchImportProducts(ctx, markdown)
		if err != nil {
			a.fail(err)
		}
		a.notify.Success("products imported", fmt.Sprintf("%d created", len(products)))

	default:
		adminUsage()
	}
}

func (a *app) adminPoints(ctx context.Context, sub string, args []string) {
	a.page("/admin/points")

	switch sub {
	case "grant", "deduct":
		fs := flag.NewFlagSet("admin points "+sub, flag.ExitOnError)
		user := fs.Uint("user", 0, "user id")
		amount := fs.Int("amount", 0, "points amount")
		reason := fs.String("reason", "", "reason")
		_ = fs.Parse(args)
		if *user == 0 || *amount <= 0 || *reason == "" {
			fmt.Fprintln(os.Stderr, "need -user, a positive -amount and -reason")
			os.Exit(1)
		}

		req := services.PointsChangeRequest{UserID: *user, Amount: *amount, Reason: *reason}
		var err error
		if sub == "grant" {
			err = a.admin.GrantPoints(ctx, req)
		} else {
			err = a.admin.DeductPoints(ctx, req)
		}
		if err != nil {
			a.fail(err)
		}
		a.notify.Success("points "+sub+"ed", fmt.Sprintf("user %d, %d points", *user, *amount))

	case "batch-grant":
		fs := flag.NewFlagSet("admin points batch-grant", flag.ExitOnError)
		file := fs.String("file", "", "markdown table file ('-'=stdin)")
		_ = fs.Parse(args)
		if *file == "" {
			fmt.Fprintln(os.Stderr, "need -file")
			os.Exit(1)
		}

		markdown, err := readInput(*file)
		if err != nil {
			a.fail(err)
		}
		if err := a.admin.BatchGrantPoints(ctx, markdown); err != nil {
			a.fail(err)
		}
		a.notify.Success("points granted", "all rows applied")

	default:
		adminUsage()
	}
}

func (a *app) adminOrders(ctx context.Context, sub string, args []string) {
	a.page("/admin/orders")

	switch sub {
	case "list":
		fs := flag.NewFlagSet("admin orders list", flag.ExitOnError)
		status := fs.String("status", "", "filter by status")
		user := fs.Uint("user", 0, "filter by user id")
		_ = fs.Parse(args)

		var userID *uint
		if *user != 0 {
			userID = user
		}

		orders, err := a.admin.ListOrders(ctx, *status, userID)
		if err != nil {
			a.fail(err)
		}
		for _, o := range orders {
			who := ""
			if o.User != nil {
				who = o.User.FullName
			}
			fmt.Printf("%-24s %-20s %-30s %6d pts  %s\n", o.OrderNumber, who, o.ProductName, o.PointsCost, o.Status)
		}

	case "batch-status":
		fs := flag.NewFlagSet("admin orders batch-status", flag.ExitOnError)
		file := fs.String("file", "", "order numbers file ('-'=stdin)")
		status := fs.String("status", "", "preparing|delivered")
		_ = fs.Parse(args)
		if *file == "" || *status == "" {
			fmt.Fprintln(os.Stderr, "need -file and -status")
			os.Exit(1)
		}

		numbers, err := readInput(*file)
		if err != nil {
			a.fail(err)
		}
		count, err := a.admin.BatchUpdateOrderStatus(ctx, numbers, *status)
		if err != nil {
			a.fail(err)
		}
		a.notify.Success(i18n.T(a.lang, "orders.updated"), fmt.Sprintf("%d orders → %s", count, *status))

	default:
		adminUsage()
	}
}

func (a *app) adminReports(ctx context.Context, sub string) {
	a.page("/admin/reports")

	switch sub {
	case "grants":
		grants, err := a.admin.PointsGrantsReport(ctx)
		if err != nil {
			a.fail(err)
		}
		for _, g := range grants {
			fmt.Printf("%-20s %-30s %+7d  %-30s by %s\n", g.UserName, g.UserEmail, g.Amount, g.Reason, g.OperatorName)
		}

	case "balances":
		balances, err := a.admin.PointsBalancesReport(ctx)
		if err != nil {
			a.fail(err)
		}
		for _, b := range balances {
			fmt.Printf("%-20s %-30s %6d pts\n", b.UserName, b.UserEmail, b.PointsBalance)
		}

	case "redemptions":
		rows, err := a.admin.RedemptionsReport(ctx)
		if err != nil {
			a.fail(err)
		}
		for _, r := range rows {
			fmt.Printf("%-30s %-20s %6d pts  %-9s %s\n", r.ProductName, r.UserName, r.PointsCost, r.Status, r.CreatedAt)
		}

	default:
		adminUsage()
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
