package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"roamsync/api"
	"roamsync/delivery"
	"roamsync/feed"
	"roamsync/internal"
	"roamsync/internal/config"
	"roamsync/metrics"
	"roamsync/metrics/counters"
	"roamsync/models"
	"roamsync/ocpi"
	"roamsync/ocpi/types"
	"roamsync/projection"
	"roamsync/subscription"
	"roamsync/telegram"
	"roamsync/utility"
	"sync"
	"time"
)

const featureName = "Sync"

// the application logger must keep satisfying the delivery engine's
// reduced log interface
var _ delivery.LogHandler = (*internal.Logger)(nil)

// SyncSystem wires the inventory feed, the projection pipeline, the
// persisted wire entities and the per-subscription delivery engines
// together.
type SyncSystem struct {
	conf       *config.Config
	logger     *internal.Logger
	database   internal.Database
	projector  *projection.Projector
	feed       *feed.Server
	apiHandler *api.Handler
	bot        *telegram.AlertBot

	mutex   sync.Mutex
	engines map[string]*engineEntry
}

type engineEntry struct {
	engine   *delivery.Engine
	endpoint string
	token    string
}

func NewSyncSystem() (*SyncSystem, error) {
	conf, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration failed: %w", err)
	}

	location, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		location = time.UTC
	}
	logger := internal.NewLogger(location)
	if conf.IsDebug != nil && *conf.IsDebug {
		logger.SetDebugMode(true)
	}

	system := &SyncSystem{
		conf:    conf,
		logger:  logger,
		engines: make(map[string]*engineEntry),
	}

	mongo, err := internal.NewMongoClient(conf)
	if err != nil {
		return nil, fmt.Errorf("mongodb initialization failed: %w", err)
	}
	if mongo != nil {
		system.database = mongo
		logger.SetDatabase(mongo)
	}

	countryCode, err := types.ParseCountryCode(conf.Roaming.CountryCode)
	if err != nil {
		return nil, fmt.Errorf("invalid country code: %w", err)
	}
	partyId, err := types.ParsePartyId(conf.Roaming.PartyId)
	if err != nil {
		return nil, fmt.Errorf("invalid party id: %w", err)
	}
	projector := projection.NewProjector(countryCode, partyId, types.NewFacilityRegistry())
	projector.UidConverter = func(sourceId string) (string, bool) {
		if _, ok := types.TryParseEvseUid(sourceId); !ok {
			return "", false
		}
		return sourceId, true
	}
	projector.IdConverter = func(sourceId string) (string, bool) {
		if _, ok := types.TryParseEvseId(sourceId); !ok {
			return "", false
		}
		return fmt.Sprintf("%s*%s*E%s", countryCode, partyId, sourceId), true
	}
	system.projector = projector

	feedServer := feed.NewServer(conf)
	feedServer.SetMessageHandler(system.handleFeedMessage)
	system.feed = feedServer

	apiHandler := api.NewHandler(system)
	apiHandler.SetLogger(logger)
	if system.database != nil {
		apiHandler.SetLogReader(system.database)
	}
	apiHandler.Register(feedServer.Router())
	system.apiHandler = apiHandler

	if conf.Telegram.Enabled {
		bot, err := telegram.NewBot(conf.Telegram.ApiKey)
		if err != nil {
			logger.Error("telegram bot initialization failed", err)
		} else {
			bot.SetDatabase(system.database)
			system.bot = bot
		}
	}

	if err = system.restoreSubscriptions(); err != nil {
		logger.Error("restoring subscriptions failed", err)
	}
	return system, nil
}

func (ss *SyncSystem) Start() {
	go func() {
		if err := metrics.Listen(ss.conf); err != nil {
			ss.logger.Error("metrics server stopped", err)
		}
	}()
	if ss.bot != nil {
		ss.bot.Start()
	}
	go ss.resyncAll()
	ss.logger.FeatureEvent(featureName, "", "starting roaming sync system")
	if err := ss.feed.Start(); err != nil {
		log.Println("feed server stopped:", err)
	}
}

// resyncAll re-projects every known pool. Run once on startup so
// inventory changes made while the service was down still reach the
// partners; unchanged pools are filtered out by the projection
// comparison and cause no deliveries.
func (ss *SyncSystem) resyncAll() {
	if ss.database == nil {
		return
	}
	pools, err := ss.database.GetPools()
	if err != nil {
		ss.logger.Error("loading pools for resync", err)
		return
	}
	for _, pool := range pools {
		ss.syncPool(pool.Id)
	}
	ss.logger.FeatureEvent(featureName, "", fmt.Sprintf("startup resync finished, %d pools considered", len(pools)))
}

// restoreSubscriptions rebuilds delivery engines for subscriptions
// negotiated before a restart. A proposal pending at shutdown is
// lost; the counterpart simply proposes again.
func (ss *SyncSystem) restoreSubscriptions() error {
	if ss.database == nil {
		return nil
	}
	records, err := ss.database.GetSubscriptions()
	if err != nil {
		return err
	}
	for _, record := range records {
		if record.Phase == string(subscription.PhaseCancelled) {
			continue
		}
		request := subscription.Request{Parameters: subscription.Parameters{
			RetryInterval:    time.Duration(record.RetryIntervalSeconds) * time.Second,
			MaxQueueSize:     record.MaxQueueSize,
			ParallelismLimit: record.ParallelismLimit,
		}}
		if _, _, err = ss.openEngine(record.Id, request, record.Endpoint, record.Token); err != nil {
			ss.logger.Error(fmt.Sprintf("restoring subscription %s", record.Id), err)
		}
	}
	return nil
}

// EventHandler

func (ss *SyncSystem) handleFeedMessage(source string, data []byte) error {
	var event internal.ChangeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decoding change event: %w", err)
	}
	event.Source = source
	switch event.Kind {
	case internal.EventPoolChanged, internal.EventStationChanged, internal.EventEvseChanged:
		ss.OnPoolChanged(&event)
	case internal.EventSessionFinished:
		ss.OnSessionFinished(&event)
	default:
		return fmt.Errorf("unknown change event kind: %s", event.Kind)
	}
	return nil
}

func (ss *SyncSystem) OnPoolChanged(event *internal.ChangeEvent) {
	poolId := event.PoolId
	if poolId == "" {
		poolId = event.EntityId
	}
	ss.syncPool(poolId)
}

func (ss *SyncSystem) OnSessionFinished(event *internal.ChangeEvent) {
	ss.syncSession(event.EntityId)
}

func (ss *SyncSystem) syncPool(poolId string) {
	if ss.database == nil {
		return
	}
	pool, err := ss.database.GetPool(poolId)
	if err != nil {
		ss.logger.Error(fmt.Sprintf("loading pool %s", poolId), err)
		return
	}

	location, warnings := ss.projector.ProjectPool(pool, projection.IncludeAll())
	ss.reportWarnings("location", poolId, warnings)
	if location == nil {
		counters.CountProjection("location", "rejected")
		return
	}
	counters.CountProjection("location", "ok")

	previous, _ := ss.database.GetLocation(pool.Id)
	if previous != nil {
		// first projection stamped Created, it never changes afterwards
		location.Created = previous.Created
		if previous.LastUpdated.After(location.LastUpdated) {
			return
		}
		if sameProjection(previous, location) {
			return
		}
	}
	if err = ss.database.UpsertLocation(location); err != nil {
		ss.logger.Error(fmt.Sprintf("storing location %s", location.Id), err)
		return
	}
	ss.logger.FeatureEvent(featureName, poolId, "location projected and stored")
	ss.broadcast(delivery.Update{Id: utility.NewUUID(), Kind: delivery.UpdateLocation, Payload: location})
}

func (ss *SyncSystem) syncSession(sessionId string) {
	if ss.database == nil {
		return
	}
	session, err := ss.database.GetChargingSession(sessionId)
	if err != nil {
		ss.logger.Error(fmt.Sprintf("loading session %s", sessionId), err)
		return
	}

	cdr, warnings := ss.projector.ProjectCdr(session)
	ss.reportWarnings("cdr", sessionId, warnings)
	if cdr == nil {
		counters.CountProjection("cdr", "rejected")
		return
	}
	counters.CountProjection("cdr", "ok")

	if err = ss.database.UpsertCdr(cdr); err != nil {
		ss.logger.Error(fmt.Sprintf("storing cdr %s", cdr.Id), err)
		return
	}
	ss.logger.FeatureEvent(featureName, sessionId, "cdr projected and stored")
	ss.broadcast(delivery.Update{Id: utility.NewUUID(), Kind: delivery.UpdateCdr, Payload: cdr})
}

// sameProjection compares two projections ignoring the fields that
// are time-stamped per run.
func sameProjection(a, b *ocpi.Location) bool {
	trim := func(location *ocpi.Location) []byte {
		clone := *location
		clone.Created = time.Time{}
		clone.LastUpdated = time.Time{}
		data, _ := json.Marshal(&clone)
		return data
	}
	return bytes.Equal(trim(a), trim(b))
}

func (ss *SyncSystem) broadcast(update delivery.Update) {
	ss.mutex.Lock()
	entries := make([]*engineEntry, 0, len(ss.engines))
	for _, entry := range ss.engines {
		entries = append(entries, entry)
	}
	ss.mutex.Unlock()

	for _, entry := range entries {
		agreement := entry.engine.Agreement()
		if agreement.Cancelled() {
			continue
		}
		entry.engine.Enqueue(update)
		counters.ObserveQueueSize(agreement.Id().String(), entry.engine.QueueSize())
	}
}

func (ss *SyncSystem) reportWarnings(kind, entityId string, warnings []projection.Warning) {
	if len(warnings) == 0 {
		return
	}
	texts := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		ss.logger.FeatureEvent("Projection", entityId, warning.String())
		texts = append(texts, warning.String())
	}
	counters.CountWarnings(kind, len(warnings))
	if ss.bot != nil {
		ss.bot.OnProjectionWarnings(entityId, texts)
	}
}

// SubscriptionService

func (ss *SyncSystem) OpenSubscription(request subscription.Request, endpoint, token string) (string, subscription.Response, error) {
	id := utility.NewUUID()
	agreement, response, err := ss.openEngine(id, request, endpoint, token)
	if err != nil {
		return "", subscription.Response{}, err
	}
	ss.persistSubscription(agreement, endpoint, token)
	counters.ObserveActiveSubscriptions(ss.activeCount())
	return id, response, nil
}

func (ss *SyncSystem) openEngine(id string, request subscription.Request, endpoint, token string) (*subscription.Agreement, subscription.Response, error) {
	subscriptionId, err := types.ParseSubscriptionId(id)
	if err != nil {
		return nil, subscription.Response{}, err
	}
	agreement, err := subscription.NewAgreement(subscriptionId, request)
	if err != nil {
		return nil, subscription.Response{}, err
	}
	sender := ocpi.NewPushSender(endpoint, token, subscriptionId)
	engine := delivery.NewEngine(agreement, sender, ss.logger)
	engine.SetCancelHandler(ss.onCancelled)
	engine.SetResultHandler(ss.onDeliveryResult)
	engine.Start()

	ss.mutex.Lock()
	ss.engines[id] = &engineEntry{engine: engine, endpoint: endpoint, token: token}
	ss.mutex.Unlock()
	return agreement, subscription.Response{MaxQueueSize: request.MaxQueueSize}, nil
}

func (ss *SyncSystem) Propose(id string, proposal subscription.Proposal) error {
	entry, ok := ss.entry(id)
	if !ok {
		return utility.Err("unknown subscription " + id)
	}
	return entry.engine.Agreement().Propose(proposal)
}

func (ss *SyncSystem) Renegotiate(id string, status subscription.RenegotiationStatus) error {
	entry, ok := ss.entry(id)
	if !ok {
		return utility.Err("unknown subscription " + id)
	}
	agreement := entry.engine.Agreement()
	if err := agreement.Renegotiate(status); err != nil {
		return err
	}
	if status == subscription.RenegotiationAccepted {
		ss.persistSubscription(agreement, entry.endpoint, entry.token)
	}
	return nil
}

func (ss *SyncSystem) Cancel(id string, reason subscription.CancelReason) error {
	entry, ok := ss.entry(id)
	if !ok {
		return utility.Err("unknown subscription " + id)
	}
	entry.engine.Cancel(reason)
	return nil
}

func (ss *SyncSystem) SubscriptionState(id string) (subscription.State, bool) {
	entry, ok := ss.entry(id)
	if !ok {
		return subscription.State{}, false
	}
	return entry.engine.State(), true
}

func (ss *SyncSystem) entry(id string) (*engineEntry, bool) {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()
	entry, ok := ss.engines[id]
	return entry, ok
}

func (ss *SyncSystem) activeCount() int {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()
	count := 0
	for _, entry := range ss.engines {
		if !entry.engine.Agreement().Cancelled() {
			count++
		}
	}
	return count
}

func (ss *SyncSystem) onCancelled(id types.SubscriptionId, reason subscription.CancelReason) {
	counters.CountCancellation(string(reason))
	counters.ObserveActiveSubscriptions(ss.activeCount())
	if entry, ok := ss.entry(id.String()); ok {
		ss.persistSubscription(entry.engine.Agreement(), entry.endpoint, entry.token)
	}
	if ss.bot != nil {
		ss.bot.OnCancellation(id.String(), string(reason))
	}
}

func (ss *SyncSystem) onDeliveryResult(id types.SubscriptionId, delivered bool) {
	result := "success"
	if !delivered {
		result = "failure"
	}
	counters.CountDelivery(id.String(), result)
}

func (ss *SyncSystem) persistSubscription(agreement *subscription.Agreement, endpoint, token string) {
	if ss.database == nil {
		return
	}
	params := agreement.Params()
	record := &models.SubscriptionRecord{
		Id:                   agreement.Id().String(),
		Endpoint:             endpoint,
		Token:                token,
		RetryIntervalSeconds: int64(params.RetryInterval / time.Second),
		MaxQueueSize:         params.MaxQueueSize,
		ParallelismLimit:     params.ParallelismLimit,
		Phase:                string(agreement.Phase()),
		CancelReason:         string(agreement.CancelReason()),
	}
	if err := ss.database.UpsertSubscription(record); err != nil {
		ss.logger.Error(fmt.Sprintf("storing subscription %s", record.Id), err)
	}
}
