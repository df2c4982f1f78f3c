package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/cart"
	"github.com/nikolayk812/storefront/internal/catalog"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/loader"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/storefront"
	"golang.org/x/sync/errgroup"
	"io"
	"log/slog"
	"strconv"
)

var errUsage = errors.New("usage: storefront products|product|collection|home|cart ...")

type app struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer

	catalog port.Catalog
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	a := &app{cfg: cfg, logger: logger, out: out}

	cmd, rest := args[0], args[1:]
	if cmd == "cart" {
		return a.cart(ctx, rest)
	}

	if err := a.connect(); err != nil {
		return err
	}

	switch cmd {
	case "products":
		return a.products(ctx, rest)
	case "product":
		return a.product(ctx, rest)
	case "collection":
		return a.collection(ctx, rest)
	case "home":
		return a.home(ctx, rest)
	default:
		return errUsage
	}
}

// connect builds the catalog on first use; cart commands that only touch
// local state never need credentials.
func (a *app) connect() error {
	if a.catalog != nil {
		return nil
	}

	client, err := storefront.NewClient(a.cfg.Storefront, nil, a.logger)
	if err != nil {
		return fmt.Errorf("storefront.NewClient: %w", err)
	}

	a.catalog = catalog.NewService(client)
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	first := fs.Int("first", catalog.DefaultPageSize, "page size")
	pages := fs.Int("pages", 1, "number of pages to load")
	filter := fs.String("filter", "", "storefront search query")
	if err := fs.Parse(args); err != nil {
		return err
	}

	l := loader.NewProductsLoader(a.catalog, *first, a.logger)
	defer l.Close()

	state := l.Load(ctx, *filter)
	for page := 1; page < *pages && state.Status == loader.StatusSuccess && l.LoadMore(ctx); page++ {
		state = l.State()
	}
	if state.Status == loader.StatusError {
		return errors.New(state.Error)
	}

	return a.print(productList(state.Products, state.HasNextPage, state.EndCursor))
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	l := loader.NewProductLoader(a.catalog, a.logger)
	defer l.Close()

	state := l.Load(ctx, args[0])
	switch {
	case state.Status == loader.StatusError:
		return errors.New(state.Error)
	case state.Product == nil:
		return fmt.Errorf("product[%s] not found", args[0])
	}

	return a.print(productView(*state.Product))
}

func (a *app) collection(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("collection", flag.ContinueOnError)
	first := fs.Int("first", catalog.DefaultPageSize, "page size")
	pages := fs.Int("pages", 1, "number of pages to load")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	l := loader.NewCollectionLoader(a.catalog, *first, a.logger)
	defer l.Close()

	state := l.Load(ctx, fs.Arg(0))
	for page := 1; page < *pages && state.Status == loader.StatusSuccess && l.LoadMore(ctx); page++ {
		state = l.State()
	}
	if state.Status == loader.StatusError {
		return errors.New(state.Error)
	}

	view := productList(state.Products, state.HasNextPage, state.EndCursor)
	view.Collection = state.Collection
	return a.print(view)
}

// home loads the product list and one collection concurrently, the way the
// landing page does.
func (a *app) home(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("home", flag.ContinueOnError)
	first := fs.Int("first", 8, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	products := loader.NewProductsLoader(a.catalog, *first, a.logger)
	defer products.Close()
	featured := loader.NewCollectionLoader(a.catalog, *first, a.logger)
	defer featured.Close()

	var (
		productsState   loader.ProductsState
		collectionState loader.CollectionState
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		productsState = products.Load(gctx, "")
		return nil
	})
	g.Go(func() error {
		collectionState = featured.Load(gctx, fs.Arg(0))
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	view := homeView{
		Products:   productList(productsState.Products, productsState.HasNextPage, productsState.EndCursor),
		Featured:   productList(collectionState.Products, collectionState.HasNextPage, collectionState.EndCursor),
		Collection: collectionState.Collection,
	}
	if productsState.Status == loader.StatusError {
		view.Errors = append(view.Errors, productsState.Error)
	}
	if collectionState.Status == loader.StatusError {
		view.Errors = append(view.Errors, collectionState.Error)
	}

	return a.print(view)
}

func (a *app) cart(ctx context.Context, args []string) error {
	storage, closeStorage, err := openStorage(ctx, a.cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	store, err := cart.NewStore(ctx, storage, a.logger)
	if err != nil {
		return fmt.Errorf("cart.NewStore: %w", err)
	}

	cmd := "show"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "show":
	case "add":
		if err := a.addToCart(ctx, store, args); err != nil {
			return err
		}
	case "update":
		if len(args) != 2 {
			return errUsage
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity[%s] is not valid", args[1])
		}
		store.UpdateQuantity(ctx, args[0], qty)
	case "remove":
		if len(args) != 1 {
			return errUsage
		}
		store.RemoveFromCart(ctx, args[0])
	case "clear":
		store.ClearCart(ctx)
	default:
		return errUsage
	}

	return a.print(cartView(store.Snapshot()))
}

func (a *app) addToCart(ctx context.Context, store *cart.Store, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errUsage
	}
	if err := a.connect(); err != nil {
		return err
	}

	product, err := a.catalog.FetchProduct(ctx, args[0])
	if err != nil {
		return fmt.Errorf("catalog.FetchProduct: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product[%s] not found", args[0])
	}

	variantID := ""
	if len(args) > 1 {
		variantID = args[1]
	} else if v, ok := firstAvailableVariant(*product); ok {
		variantID = v.ID
	}

	item, err := domain.LineItemFromVariant(*product, variantID)
	if err != nil {
		return fmt.Errorf("domain.LineItemFromVariant: %w", err)
	}

	if len(args) > 2 {
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity[%s] is not valid", args[2])
		}
		item.Quantity = qty
	}

	store.AddToCart(ctx, item)
	return nil
}

func firstAvailableVariant(p domain.Product) (domain.Variant, bool) {
	for _, v := range p.Variants {
		if v.AvailableForSale {
			return v, true
		}
	}
	return domain.Variant{}, false
}

// openStorage returns the configured cart storage and a func releasing it.
func openStorage(ctx context.Context, cfg config.Config) (port.KeyValueStorage, func(), error) {
	switch cfg.CartStorage {
	case config.StorageMemory:
		return repository.NewMemoryStorage(), func() {}, nil
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		return repository.NewPostgresStorage(pool), pool.Close, nil
	case config.StorageRedis:
		client, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewRedisClient: %w", err)
		}
		return repository.NewRedisStorage(client), func() { _ = client.Close() }, nil
	default:
		storage, err := repository.NewFileStorage(cfg.CartStorageDir)
		if err != nil {
			return nil, nil, fmt.Errorf("repository.NewFileStorage: %w", err)
		}
		return storage, func() {}, nil
	}
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("enc.Encode: %w", err)
	}
	return nil
}
