package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	fix42nos "github.com/quickfixgo/fix42/newordersingle"
	fix44nos "github.com/quickfixgo/fix44/newordersingle"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/quickfix/log/file"
	"github.com/shopspring/decimal"
)

// test initiator: logs on and crosses a buy against a sell so the
// acceptor produces fills.

type InitiatorApp struct {
	dialect   string
	sessionID *quickfix.SessionID
}

func (a *InitiatorApp) OnCreate(sessionID quickfix.SessionID) {
	a.sessionID = &sessionID
}

func (a *InitiatorApp) OnLogon(sessionID quickfix.SessionID) {
	log.Println("Logon success", sessionID)
	if a.dialect == "fix42" {
		sendMatchLimitFIX42(sessionID)
	} else {
		sendMatchLimitFIX44(sessionID)
	}
}

func (a *InitiatorApp) OnLogout(sessionID quickfix.SessionID)                       {}
func (a *InitiatorApp) ToAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) {}
func (a *InitiatorApp) ToApp(msg *quickfix.Message, sessionID quickfix.SessionID) error {
	return nil
}
func (a *InitiatorApp) FromAdmin(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}
func (a *InitiatorApp) FromApp(msg *quickfix.Message, sessionID quickfix.SessionID) quickfix.MessageRejectError {
	return nil
}

func sendMatchLimitFIX44(sessionID quickfix.SessionID) {
	orderBuy := fix44nos.New(
		field.NewClOrdID(""),
		field.NewSide(enum.Side_BUY),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	orderBuy.SetSymbol("EURUSD")
	orderBuy.SetMaturityMonthYear("202609")
	orderBuy.SetAccount("011C399158")
	orderBuy.SetPrice(decimal.NewFromFloat(1.1050), 4)
	orderBuy.SetOrderQty(decimal.NewFromInt(10000), 0)
	orderBuy.SetTimeInForce("0")
	orderBuy.SetSenderCompID(sessionID.SenderCompID)
	orderBuy.SetTargetCompID(sessionID.TargetCompID)
	orderBuy.SetClOrdID(randSeq(17))
	err := quickfix.Send(orderBuy)
	log.Println(err)

	orderSell := fix44nos.New(
		field.NewClOrdID(""),
		field.NewSide(enum.Side_SELL),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	orderSell.SetSymbol("EURUSD")
	orderSell.SetMaturityMonthYear("202609")
	orderSell.SetAccount("011C399157")
	orderSell.SetPrice(decimal.NewFromFloat(1.1050), 4)
	orderSell.SetOrderQty(decimal.NewFromInt(50000), 0)
	orderSell.SetTimeInForce("0")
	orderSell.SetSenderCompID(sessionID.SenderCompID)
	orderSell.SetTargetCompID(sessionID.TargetCompID)
	orderSell.SetClOrdID(randSeq(17))
	err = quickfix.Send(orderSell)
	log.Println(err)
}

func sendMatchLimitFIX42(sessionID quickfix.SessionID) {
	orderBuy := fix42nos.New(
		field.NewClOrdID(randSeq(17)),
		field.NewHandlInst(enum.HandlInst_AUTOMATED_EXECUTION_ORDER_PRIVATE_NO_BROKER_INTERVENTION),
		field.NewSymbol("EURUSD"),
		field.NewSide(enum.Side_BUY),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	orderBuy.SetMaturityMonthYear("202609")
	orderBuy.SetAccount("011C399158")
	orderBuy.SetPrice(decimal.NewFromFloat(1.1050), 4)
	orderBuy.SetOrderQty(decimal.NewFromInt(10000), 0)
	orderBuy.SetSenderCompID(sessionID.SenderCompID)
	orderBuy.SetTargetCompID(sessionID.TargetCompID)
	err := quickfix.Send(orderBuy)
	log.Println(err)

	orderSell := fix42nos.New(
		field.NewClOrdID(randSeq(17)),
		field.NewHandlInst(enum.HandlInst_AUTOMATED_EXECUTION_ORDER_PRIVATE_NO_BROKER_INTERVENTION),
		field.NewSymbol("EURUSD"),
		field.NewSide(enum.Side_SELL),
		field.NewTransactTime(time.Now()),
		field.NewOrdType(enum.OrdType_LIMIT))
	orderSell.SetMaturityMonthYear("202609")
	orderSell.SetAccount("011C399157")
	orderSell.SetPrice(decimal.NewFromFloat(1.1050), 4)
	orderSell.SetOrderQty(decimal.NewFromInt(50000), 0)
	orderSell.SetSenderCompID(sessionID.SenderCompID)
	orderSell.SetTargetCompID(sessionID.TargetCompID)
	err = quickfix.Send(orderSell)
	log.Println(err)
}

func main() {
	var dialect string
	flag.StringVar(&dialect, "dialect", "fix44", "fix42 or fix44")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("usage: fixclient [-dialect fix44] <config>")
	}
	cfgPath := flag.Arg(0)
	log.Println("cfgPath:", cfgPath)
	app := &InitiatorApp{dialect: dialect}

	cfg, err := os.Open(cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	defer cfg.Close() // nolint

	settings, err := quickfix.ParseSettings(cfg)
	if err != nil {
		log.Fatal(err)
	}

	storeFactory := quickfix.NewMemoryStoreFactory()
	logFactory, _ := file.NewLogFactory(settings)
	initiator, err := quickfix.NewInitiator(app, storeFactory, settings, logFactory)
	if err != nil {
		log.Fatal(err)
	}
	err = initiator.Start()
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Initiator started...")
	select {}
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

func randSeq(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
