package main

import (
	"log/slog"
	"os"

	"github.com/efreitasn/deliexchange/internal/config"
	"github.com/efreitasn/deliexchange/internal/domain"
	"github.com/efreitasn/deliexchange/internal/engine"
	"github.com/efreitasn/deliexchange/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	limits := engine.Limits{
		MinPrice:  cfg.MinPrice,
		MaxPrice:  cfg.MaxPrice,
		MinVolume: cfg.MinVolume,
		MaxVolume: cfg.MaxVolume,
	}

	tradeLog := store.NewTradeStore()
	ex := engine.NewExchange(domain.AssetPastrami, tradeLog, limits, cfg.SelfTradePolicy)

	logger.Info("exchange ready",
		slog.String("asset", string(ex.Asset())),
		slog.String("self_trade_policy", string(cfg.SelfTradePolicy)),
	)

	// Scripted session: rest two asks, cross them with a bid, cancel the
	// survivor.
	orders := []domain.Order{
		{Asset: domain.AssetPastrami, Side: domain.SideSell, UserID: 1, Price: 10, Volume: 3, OrderID: 1},
		{Asset: domain.AssetPastrami, Side: domain.SideSell, UserID: 2, Price: 11, Volume: 4, OrderID: 2},
		{Asset: domain.AssetPastrami, Side: domain.SideBuy, UserID: 3, Price: 10, Volume: 5, OrderID: 3},
	}
	for _, o := range orders {
		placeOrder(logger, ex, o)
	}

	cancelOrder(logger, ex, 3)
	cancelOrder(logger, ex, 3) // already cancelled: reported as not found

	logDepth(logger, ex)

	logger.Info("session complete",
		slog.Int("trades", len(tradeLog.GetByAsset(ex.Asset()))),
	)
}

func placeOrder(logger *slog.Logger, ex *engine.Exchange, o domain.Order) {
	outcome, err := ex.PlaceOrder(o)
	if err != nil {
		logger.Warn("order rejected",
			slog.Int64("order_id", o.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}
	for _, t := range outcome.Trades {
		logger.Info("trade",
			slog.Int64("trade_id", t.TradeID),
			slog.Int64("buyer_id", t.BuyerID),
			slog.Int64("seller_id", t.SellerID),
			slog.Int64("price", t.Price),
			slog.Int64("volume", t.Volume),
		)
	}
	if outcome.Resting != nil {
		logger.Info("order resting",
			slog.Int64("order_id", outcome.Resting.OrderID),
			slog.String("side", string(outcome.Resting.Side)),
			slog.Int64("price", outcome.Resting.Price),
			slog.Int64("volume", outcome.Resting.Volume),
		)
	}
}

func cancelOrder(logger *slog.Logger, ex *engine.Exchange, orderID int64) {
	o, err := ex.CancelOrder(orderID)
	if err != nil {
		logger.Warn("cancel failed",
			slog.Int64("order_id", orderID),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Info("order cancelled",
		slog.Int64("order_id", o.OrderID),
		slog.Int64("remaining_volume", o.Volume),
	)
}

func logDepth(logger *slog.Logger, ex *engine.Exchange) {
	const depth = 5
	for _, l := range ex.TopBids(depth) {
		logger.Info("bid level",
			slog.Int64("price", l.Price),
			slog.Int64("volume", l.TotalVolume),
			slog.Int("orders", l.OrderCount),
		)
	}
	for _, l := range ex.TopAsks(depth) {
		logger.Info("ask level",
			slog.Int64("price", l.Price),
			slog.Int64("volume", l.TotalVolume),
			slog.Int("orders", l.OrderCount),
		)
	}
}
