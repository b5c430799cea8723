// Command awsomeshop is a terminal client for the employee rewards shop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/awsomeshop/awsomeshop/internal/api"
	"github.com/awsomeshop/awsomeshop/internal/i18n"
	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/model"
	"github.com/awsomeshop/awsomeshop/internal/notify"
	"github.com/awsomeshop/awsomeshop/internal/routes"
	"github.com/awsomeshop/awsomeshop/internal/services"
	"github.com/awsomeshop/awsomeshop/internal/session"
)

type app struct {
	session *session.Manager
	notify  *notify.Dispatcher
	lang    string

	auth        *services.AuthService
	products    *services.ProductService
	redemptions *services.RedemptionService
	points      *services.PointsService
	users       *services.UserService
	admin       *services.AdminService
}

func usage() {
	fmt.Fprintf(os.Stderr, `awsomeshop CLI
Usage:
  awsomeshop <cmd> [args]

Commands:
  login        -email <email> -password <password>
  logout
  products                                 (active catalog)
  product      -id <id>
  redeem       -id <product id>
  redemptions                              (your order history)
  points       [-page N] [-size N]
  profile
  phone        -number <digits>
  admin        users|products|points|orders|reports ...
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log := logging.New(os.Getenv("LOG_LEVEL"))
	store := session.NewStore(session.DefaultDir(), log)
	mgr := session.NewManager(store)
	n := notify.Default()
	lang := i18n.NewDetector(store, log).Resolve(ctx)

	client := api.New(store,
		api.WithLogger(log),
		api.WithUnauthorizedHook(func() {
			n.Warning(i18n.T(lang, "session.expired"), "run 'awsomeshop login'")
		}),
	)

	a := &app{
		session:     mgr,
		notify:      n,
		lang:        lang,
		auth:        services.NewAuth(client, store),
		products:    services.NewProducts(client),
		redemptions: services.NewRedemptions(client),
		points:      services.NewPoints(client),
		users:       services.NewUsers(client),
		admin:       services.NewAdmin(client),
	}

	switch flag.Arg(0) {
	case "login":
		a.cmdLogin(ctx, flag.Args()[1:])
	case "logout":
		a.cmdLogout(ctx)
	case "products":
		a.cmdProducts(ctx)
	case "product":
		a.cmdProduct(ctx, flag.Args()[1:])
	case "redeem":
		a.cmdRedeem(ctx, flag.Args()[1:])
	case "redemptions":
		a.cmdRedemptions(ctx)
	case "points":
		a.cmdPoints(ctx, flag.Args()[1:])
	case "profile":
		a.cmdProfile(ctx)
	case "phone":
		a.cmdPhone(ctx, flag.Args()[1:])
	case "admin":
		a.cmdAdmin(ctx, flag.Args()[1:])
	default:
		usage()
	}
}

// page runs the route guard for a path; a denied request explains where the
// visitor was sent instead and exits.
func (a *app) page(path string) {
	d := routes.Resolve(a.session.IsAuthenticated(), a.session.Role(), path)
	if d.Allow {
		return
	}
	if d.RedirectTo == routes.LoginPath {
		a.notify.Warning(i18n.T(a.lang, "access.denied"), "log in first with 'awsomeshop login'")
	} else {
		a.notify.Warning(i18n.T(a.lang, "access.denied"), "redirected to "+d.RedirectTo)
	}
	os.Exit(1)
}

func (a *app) fail(err error) {
	var se *api.StatusError
	var re *api.RequestError
	switch {
	case errors.As(err, &se):
		msg := se.Message
		if msg == "" {
			msg = http.StatusText(se.Status)
		}
		switch se.Status {
		case http.StatusUnauthorized:
			// the unauthorized hook already spoke
		case http.StatusForbidden:
			a.notify.Error(i18n.T(a.lang, "access.denied"), msg)
		default:
			a.notify.Error(i18n.T(a.lang, "request.failed"), msg)
		}
	case errors.As(err, &re):
		a.notify.Error(i18n.T(a.lang, "network.error"), re.Err.Error())
	default:
		a.notify.Error(i18n.T(a.lang, "request.failed"), err.Error())
	}
	os.Exit(1)
}

func (a *app) cmdLogin(ctx context.Context, args []string) {
	d := routes.Resolve(a.session.IsAuthenticated(), a.session.Role(), routes.LoginPath)
	if !d.Allow {
		a.notify.Info("already logged in", "see "+d.RedirectTo)
		return
	}

	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "need -email and -password")
		os.Exit(1)
	}

	token, user, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		a.notify.Error(i18n.T(a.lang, "login.failed"), describeError(err))
		os.Exit(1)
	}
	a.session.Login(token, user)

	a.notify.Success(i18n.T(a.lang, "login.success"),
		fmt.Sprintf("%s (%d points)", user.FullName, user.PointsBalance))
}

func (a *app) cmdLogout(ctx context.Context) {
	_ = a.auth.Logout(ctx)
	a.session.Logout()
	a.notify.Success(i18n.T(a.lang, "logout.success"), "")
}

func (a *app) cmdProducts(ctx context.Context) {
	a.page("/products")

	products, err := a.products.List(ctx)
	if err != nil {
		a.fail(err)
	}

	for _, p := range products {
		fmt.Printf("%-5d %-30s %6d pts  stock %d\n", p.ID, p.Name, p.PointsRequired, p.StockQuantity)
	}
	if len(products) == 0 {
		fmt.Println("no products available")
	}
}

func (a *app) cmdProduct(ctx context.Context, args []string) {
	a.page("/products")

	fs := flag.NewFlagSet("product", flag.ExitOnError)
	id := fs.Uint("id", 0, "product id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	p, err := a.products.Get(ctx, *id)
	if err != nil {
		a.fail(err)
	}
	fmt.Printf("%s\n  points: %d\n  stock:  %d\n  status: %s\n", p.Name, p.PointsRequired, p.StockQuantity, p.Status)
}

func (a *app) cmdRedeem(ctx context.Context, args []string) {
	a.page("/products")

	fs := flag.NewFlagSet("redeem", flag.ExitOnError)
	id := fs.Uint("id", 0, "product id")
	_ = fs.Parse(args)
	if *id == 0 {
		fmt.Fprintln(os.Stderr, "need -id")
		os.Exit(1)
	}

	order, err := a.redemptions.Redeem(ctx, *id)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) && se.Status == http.StatusBadRequest {
			a.notify.Error(i18n.T(a.lang, "redeem.failed"), se.Message)
			os.Exit(1)
		}
		a.fail(err)
	}

	// Keep the local balance in step with what the order says it now is.
	a.session.UpdateUser(model.UserPatch{PointsBalance: &order.PointsBalanceAfter})

	a.notify.Success(i18n.T(a.lang, "redeem.success"),
		fmt.Sprintf("order %s, %d points left", order.OrderNumber, order.PointsBalanceAfter))
}

func (a *app) cmdRedemptions(ctx context.Context) {
	a.page("/redemptions")

	orders, err := a.redemptions.History(ctx)
	if err != nil {
		a.fail(err)
	}

	for _, o := range orders {
		fmt.Printf("%-24s %-30s %6d pts  %-9s %s\n",
			o.OrderNumber, o.ProductName, o.PointsCost, o.Status, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	if len(orders) == 0 {
		fmt.Println("no orders yet")
	}
}

func (a *app) cmdPoints(ctx context.Context, args []string) {
	a.page("/points")

	fs := flag.NewFlagSet("points", flag.ExitOnError)
	pageNum := fs.Int("page", 1, "page")
	size := fs.Int("size", 20, "page size")
	_ = fs.Parse(args)

	balance, err := a.points.Balance(ctx)
	if err != nil {
		a.fail(err)
	}
	fmt.Printf("%s: %d\n\n", i18n.T(a.lang, "points.balance"), balance)

	txPage, err := a.points.Transactions(ctx, *pageNum, *size)
	if err != nil {
		a.fail(err)
	}
	for _, tx := range txPage.Transactions {
		fmt.Printf("%-10s %+7d  → %6d  %s\n", tx.TransactionType, tx.Amount, tx.BalanceAfter, tx.Reason)
	}
	fmt.Printf("\npage %d/%d (%d total)\n", txPage.Page, totalPages(txPage.Total, txPage.PageSize), txPage.Total)
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 1
	}
	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (a *app) cmdProfile(ctx context.Context) {
	a.page("/profile")

	user, err := a.users.Profile(ctx)
	if err != nil {
		a.fail(err)
	}
	fmt.Printf("%s <%s>\n  phone:   %s\n  role:    %s\n  points:  %d\n  member since: %s\n",
		user.FullName, user.Email, user.Phone, user.Role, user.PointsBalance, user.CreatedAt.Format("2006-01-02"))
}

func (a *app) cmdPhone(ctx context.Context, args []string) {
	a.page("/profile")

	fs := flag.NewFlagSet("phone", flag.ExitOnError)
	number := fs.String("number", "", "new phone number (digits only)")
	_ = fs.Parse(args)
	if *number == "" {
		fmt.Fprintln(os.Stderr, "need -number")
		os.Exit(1)
	}

	if err := a.users.UpdatePhone(ctx, *number); err != nil {
		a.fail(err)
	}
	a.session.UpdateUser(model.UserPatch{Phone: number})
	a.notify.Success(i18n.T(a.lang, "phone.updated"), *number)
}

func describeError(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}
