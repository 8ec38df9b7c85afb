package fixgateway

import (
	"errors"

	"github.com/quickfixgo/quickfix"
)

func (g *Gateway) AddRequestToMap(clOrdID string, sessionID *quickfix.SessionID) {
	g.requestMapping.Store(clOrdID, sessionID)
}

func (g *Gateway) GetSessionByClOrdID(clOrdID string) (*quickfix.SessionID, error) {
	v, ok := g.requestMapping.Load(clOrdID)
	if !ok {
		return nil, errors.New("ClOrdID not found")
	}
	return v.(*quickfix.SessionID), nil
}

func (g *Gateway) DeleteRequestByClOrdID(clOrdID string) {
	g.requestMapping.Delete(clOrdID)
}
