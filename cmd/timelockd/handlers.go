package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/escrow"
	"github.com/iov-one/timelock/x/sigs"
	"github.com/iov-one/timelock/x/token"
	"github.com/tendermint/tendermint/libs/log"
)

// maxBodySize limits the size of a request body.
const maxBodySize = 1 << 16

// Ledger is the state the HTTP API operates on.
type Ledger struct {
	ChainID string
	Escrow  *escrow.Service
	Tx      timelock.Transactor
	Tokens  token.Controller
	Sigs    sigs.Controller
}

// decimals returns the number of fractional digits of the ledger token.
func (l *Ledger) decimals() (int32, error) {
	var info *token.Info
	err := l.Tx.View(func(db timelock.ReadOnlyKVStore) error {
		var err error
		info, err = l.Tokens.Info(db)
		return err
	})
	if err != nil {
		return 0, errors.Wrap(errors.ErrState, "token not configured: "+err.Error())
	}
	return info.Decimals, nil
}

// NewRouter returns the HTTP API of the ledger.
func NewRouter(l *Ledger, logger log.Logger) http.Handler {
	rt := http.NewServeMux()
	rt.Handle("/info", &InfoHandler{ledger: l})
	rt.Handle("/lock", &LockHandler{ledger: l})
	rt.Handle("/withdrawal", &WithdrawalHandler{ledger: l})
	rt.Handle("/deposits/", &DepositHandler{ledger: l})
	rt.Handle("/beneficiaries/", &BeneficiaryHandler{ledger: l})
	rt.Handle("/events", &EventsHandler{ledger: l})
	rt.Handle("/custody", &CustodyHandler{ledger: l})
	rt.Handle("/token/approve", &ApproveHandler{ledger: l})
	rt.Handle("/token/balances/", &BalanceHandler{ledger: l})
	rt.Handle("/signers/", &SignerHandler{ledger: l})
	rt.Handle("/", &DefaultHandler{})
	return withAccessLog(logger, rt)
}

type InfoHandler struct {
	ledger *Ledger
}

func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	JSONResp(w, http.StatusOK, struct {
		Version string `json:"version"`
		ChainID string `json:"chain_id"`
		Custody string `json:"custody"`
	}{
		Version: timelock.Version(),
		ChainID: h.ledger.ChainID,
		Custody: escrow.CustodyAddress().String(),
	})
}

type LockHandler struct {
	ledger *Ledger
}

func (h *LockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var signed signedRequest
	if !decodeBody(w, r, &signed) {
		return
	}
	// The creator is the signer of the request.
	var req struct {
		Beneficiary timelock.Address  `json:"beneficiary"`
		Amount      string            `json:"amount"`
		LockedUntil timelock.UnixTime `json:"locked_until"`
	}
	if err := decodeJSON(signed.Body, &req); err != nil {
		JSONErr(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	amount, err := h.ledger.amount(req.Amount)
	if err != nil {
		JSONError(w, r, err)
		return
	}
	creator, err := h.ledger.authenticate(actionLock, &signed)
	if err != nil {
		JSONError(w, r, err)
		return
	}
	id, err := h.ledger.Escrow.Lock(r.Context(), creator, req.Beneficiary, amount, req.LockedUntil)
	if err != nil {
		JSONError(w, r, err)
		return
	}
	JSONResp(w, http.StatusCreated, struct {
		DepositID uint64 `json:"deposit_id"`
	}{
		DepositID: id,
	})
}

type WithdrawalHandler struct {
	ledger *Ledger
}

func (h *WithdrawalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req struct {
		DepositID   uint64           `json:"deposit_id"`
		Beneficiary timelock.Address `json:"beneficiary"`
		Caller      timelock.Address `json:"caller"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.ledger.Escrow.Withdrawal(r.Context(), req.Caller, req.DepositID, req.Beneficiary); err != nil {
		JSONError(w, r, err)
		return
	}
	JSONResp(w, http.StatusOK, struct{}{})
}

type DepositHandler struct {
	ledger *Ledger
}

func (h *DepositHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	id, err := strconv.ParseUint(lastChunk(r.URL.Path), 10, 64)
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "Deposit ID must be a positive number.")
		return
	}
	beneficiary, err := timelock.ParseAddress(r.URL.Query().Get("beneficiary"))
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "beneficiary must be a valid address value.")
		return
	}
	d, err := h.ledger.Escrow.GetDeposit(r.Context(), id, beneficiary)
	if err != nil {
		JSONError(w, r, err)
		return
	}
	decimals, err := h.ledger.decimals()
	if err != nil {
		JSONError(w, r, err)
		return
	}
	JSONResp(w, http.StatusOK, struct {
		Creator     timelock.Address  `json:"creator"`
		Amount      string            `json:"amount"`
		LockedUntil timelock.UnixTime `json:"locked_until"`
	}{
		Creator:     d.Creator,
		Amount:      token.FormatAmount(d.Amount, decimals),
		LockedUntil: d.LockedUntil,
	})
}

type BeneficiaryHandler struct {
	ledger *Ledger
}

func (h *BeneficiaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	beneficiary, err := timelock.ParseAddress(lastChunk(r.URL.Path))
	if err == nil {
		err = beneficiary.Validate()
	}
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "beneficiary must be a valid address value.")
		return
	}
	ids, err := h.ledger.Escrow.GetDepositIDsForBeneficiary(r.Context(), beneficiary)
	if err != nil {
		JSONError(w, r, err)
		return
	}
	JSONResp(w, http.StatusOK, struct {
		DepositIDs []uint64 `json:"deposit_ids"`
	}{
		DepositIDs: ids,
	})
}

type EventsHandler struct {
	ledger *Ledger
}

// eventView is the JSON representation of a single event. Only one of
// Lockup and Withdrawal is set.
type eventView struct {
	Number     uint64            `json:"number"`
	Time       timelock.UnixTime `json:"time"`
	Lockup     *lockupView       `json:"lockup,omitempty"`
	Withdrawal *withdrawalView   `json:"withdrawal,omitempty"`
}

type lockupView struct {
	DepositID   uint64            `json:"deposit_id"`
	Creator     timelock.Address  `json:"creator"`
	Beneficiary timelock.Address  `json:"beneficiary"`
	Amount      string            `json:"amount"`
	LockedUntil timelock.UnixTime `json:"locked_until"`
}

type withdrawalView struct {
	DepositID   uint64           `json:"deposit_id"`
	Beneficiary timelock.Address `json:"beneficiary"`
	Caller      timelock.Address `json:"caller"`
	Amount      string           `json:"amount"`
}

func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	after, err := uintParam(q.Get("after"))
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "after must be a positive number.")
		return
	}
	limit, err := uintParam(q.Get("limit"))
	if err != nil || limit > paginationMaxItems {
		JSONErr(w, http.StatusBadRequest, "limit must be a number not greater than "+strconv.Itoa(paginationMaxItems)+".")
		return
	}
	if limit == 0 {
		limit = paginationMaxItems
	}
	events, err := h.ledger.Escrow.Events(r.Context(), after, int(limit))
	if err != nil {
		JSONError(w, r, err)
		return
	}
	decimals, err := h.ledger.decimals()
	if err != nil {
		JSONError(w, r, err)
		return
	}

	views := make([]eventView, 0, len(events))
	for _, e := range events {
		v := eventView{Number: e.Number, Time: e.Time}
		if l := e.Lockup; l != nil {
			v.Lockup = &lockupView{
				DepositID:   l.DepositId,
				Creator:     l.Creator,
				Beneficiary: l.Beneficiary,
				Amount:      token.FormatAmount(l.Amount, decimals),
				LockedUntil: l.LockedUntil,
			}
		}
		if wd := e.Withdrawal; wd != nil {
			v.Withdrawal = &withdrawalView{
				DepositID:   wd.DepositId,
				Beneficiary: wd.Beneficiary,
				Caller:      wd.Caller,
				Amount:      token.FormatAmount(wd.Amount, decimals),
			}
		}
		views = append(views, v)
	}
	JSONResp(w, http.StatusOK, struct {
		Events []eventView `json:"events"`
	}{
		Events: views,
	})
}

type CustodyHandler struct {
	ledger *Ledger
}

func (h *CustodyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	decimals, err := h.ledger.decimals()
	if err != nil {
		JSONError(w, r, err)
		return
	}
	report, err := h.ledger.Escrow.Audit(r.Context())
	if report == nil {
		JSONError(w, r, err)
		return
	}
	// A report of a broken invariant is returned together with the error.
	code := http.StatusOK
	var errs []string
	if err != nil {
		code = http.StatusInternalServerError
		errs = []string{err.Error()}
	}
	JSONResp(w, code, struct {
		Address  string   `json:"address"`
		Deposits uint64   `json:"deposits"`
		Active   uint64   `json:"active"`
		Locked   string   `json:"locked"`
		Custody  string   `json:"custody"`
		Events   uint64   `json:"events"`
		Errors   []string `json:"errors,omitempty"`
	}{
		Address:  escrow.CustodyAddress().String(),
		Deposits: report.Deposits,
		Active:   report.Active,
		Locked:   token.FormatAmount(report.Locked, decimals),
		Custody:  token.FormatAmount(report.Custody, decimals),
		Events:   report.Events,
		Errors:   errs,
	})
}

type ApproveHandler struct {
	ledger *Ledger
}

func (h *ApproveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var signed signedRequest
	if !decodeBody(w, r, &signed) {
		return
	}
	// Only the owner can grant the custody an allowance.
	var req struct {
		Amount string `json:"amount"`
	}
	if err := decodeJSON(signed.Body, &req); err != nil {
		JSONErr(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	amount, err := h.ledger.amount(req.Amount)
	if err != nil {
		JSONError(w, r, err)
		return
	}
	owner, err := h.ledger.authenticate(actionApprove, &signed)
	if err != nil {
		JSONError(w, r, err)
		return
	}
	if err := h.ledger.Escrow.Approve(r.Context(), owner, amount); err != nil {
		JSONError(w, r, err)
		return
	}
	JSONResp(w, http.StatusOK, struct{}{})
}

type BalanceHandler struct {
	ledger *Ledger
}

func (h *BalanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	owner, err := timelock.ParseAddress(lastChunk(r.URL.Path))
	if err == nil {
		err = owner.Validate()
	}
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "address must be a valid address value.")
		return
	}
	decimals, err := h.ledger.decimals()
	if err != nil {
		JSONError(w, r, err)
		return
	}
	var balance, allowance uint64
	err = h.ledger.Tx.View(func(db timelock.ReadOnlyKVStore) error {
		var err error
		if balance, err = h.ledger.Tokens.Balance(db, owner); err != nil {
			return err
		}
		allowance, err = h.ledger.Tokens.Allowance(db, owner, escrow.CustodyAddress())
		return err
	})
	if err != nil {
		JSONError(w, r, err)
		return
	}
	JSONResp(w, http.StatusOK, struct {
		Balance   string `json:"balance"`
		Allowance string `json:"custody_allowance"`
	}{
		Balance:   token.FormatAmount(balance, decimals),
		Allowance: token.FormatAmount(allowance, decimals),
	})
}

type SignerHandler struct {
	ledger *Ledger
}

func (h *SignerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	addr, err := timelock.ParseAddress(lastChunk(r.URL.Path))
	if err == nil {
		err = addr.Validate()
	}
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "address must be a valid address value.")
		return
	}
	var seq int64
	err = h.ledger.Tx.View(func(db timelock.ReadOnlyKVStore) error {
		var err error
		seq, err = h.ledger.Sigs.Sequence(db, addr)
		return err
	})
	if err != nil {
		JSONError(w, r, err)
		return
	}
	JSONResp(w, http.StatusOK, struct {
		Address  timelock.Address `json:"address"`
		Sequence int64            `json:"sequence"`
	}{
		Address:  addr,
		Sequence: seq,
	})
}

// DefaultHandler is used to handle the request that no other handler wants.
type DefaultHandler struct{}

func (h *DefaultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// No trailing slash.
	if len(r.URL.Path) > 1 && r.URL.Path[len(r.URL.Path)-1] == '/' {
		path := strings.TrimRight(r.URL.Path, "/")
		JSONRedirect(w, http.StatusPermanentRedirect, path)
		return
	}
	JSONErr(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// amount parses a decimal amount of the ledger token into base units.
func (l *Ledger) amount(s string) (uint64, error) {
	decimals, err := l.decimals()
	if err != nil {
		return 0, err
	}
	return token.ParseAmount(s, decimals)
}

const paginationMaxItems = 100

func uintParam(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

func lastChunk(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	JSONErr(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		JSONErr(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// decodeJSON decodes raw into dest, rejecting unknown fields.
func decodeJSON(raw []byte, dest interface{}) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "missing body")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

// errStatus returns the HTTP status code describing given error.
func errStatus(err error) int {
	switch {
	case errors.ErrInvalidBeneficiary.Is(err),
		errors.ErrInvalidAmount.Is(err),
		errors.ErrInput.Is(err),
		errors.ErrEmpty.Is(err),
		errors.ErrOverflow.Is(err):
		return http.StatusBadRequest
	case errors.ErrUnauthorized.Is(err):
		return http.StatusUnauthorized
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case errors.ErrStillLocked.Is(err), sigs.ErrInvalidSequence.Is(err):
		return http.StatusConflict
	case errors.ErrTransferFailed.Is(err):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// JSONError writes an error response with the status derived from the error
// kind. Details of internal errors are logged but not returned.
func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	code := errStatus(err)
	if code == http.StatusInternalServerError {
		timelock.GetLogger(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
		JSONErr(w, code, http.StatusText(code))
		return
	}
	JSONErr(w, code, err.Error())
}

// JSONResp write content as JSON encoded response.
func JSONResp(w http.ResponseWriter, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Error"]}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// JSONErr write single error as JSON encoded response.
func JSONErr(w http.ResponseWriter, code int, errText string) {
	JSONErrs(w, code, []string{errText})
}

// JSONErrs write multiple errors as JSON encoded response.
func JSONErrs(w http.ResponseWriter, code int, errs []string) {
	resp := struct {
		Errors []string `json:"errors"`
	}{
		Errors: errs,
	}
	JSONResp(w, code, resp)
}

// JSONRedirect return redirect response, but with JSON formatted body.
func JSONRedirect(w http.ResponseWriter, code int, urlStr string) {
	w.Header().Set("Location", urlStr)
	var content = struct {
		Code     int
		Location string
	}{
		Code:     code,
		Location: urlStr,
	}
	JSONResp(w, code, content)
}

// withAccessLog logs every request and attaches the logger to the request
// context.
func withAccessLog(logger log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		ctx := timelock.WithLogger(r.Context(), logger)
		next.ServeHTTP(sw, r.WithContext(ctx))
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.code,
			"duration", time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}
