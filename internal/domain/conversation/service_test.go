package conversation_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yama-bushi/messaging-service/internal/domain/contact"
	"github.com/yama-bushi/messaging-service/internal/domain/conversation"
	"github.com/yama-bushi/messaging-service/internal/utils/platformerrors"
)

// fakeConversationRepo enforces the unique index on the ordered contact
// pair, which is what the resolver's race recovery depends on.
type fakeConversationRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]*conversation.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{rows: make(map[string]*conversation.Conversation)}
}

func pairKey(customerContactID, contactContactID uint) string {
	return fmt.Sprintf("%d|%d", customerContactID, contactContactID)
}

func (f *fakeConversationRepo) FindByPair(ctx context.Context, customerContactID, contactContactID uint) (*conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if conv, ok := f.rows[pairKey(customerContactID, contactContactID)]; ok {
		copied := *conv
		return &copied, nil
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "test-conversation-not-found")
}

func (f *fakeConversationRepo) CreateWithParticipants(ctx context.Context, conv *conversation.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := pairKey(conv.CustomerContactID, conv.ContactContactID)
	if _, ok := f.rows[k]; ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "conversation already exists", nil, "test-conversation-conflict")
	}
	f.nextID++
	conv.ID = f.nextID
	conv.PublicID = fmt.Sprintf("conv_test_%d", conv.ID)
	conv.UpdatedAt = time.Now().UTC()
	copied := *conv
	f.rows[k] = &copied
	return nil
}

func (f *fakeConversationRepo) FindByID(ctx context.Context, id uint) (*conversation.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conv := range f.rows {
		if conv.ID == id {
			copied := *conv
			return &copied, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "test-conversation-not-found")
}

func (f *fakeConversationRepo) List(ctx context.Context) ([]conversation.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summaries := make([]conversation.Summary, 0, len(f.rows))
	for _, conv := range f.rows {
		summaries = append(summaries, conversation.Summary{
			ID:          conv.ID,
			PublicID:    conv.PublicID,
			LastUpdated: conv.UpdatedAt,
		})
	}
	return summaries, nil
}

// fakeContactRepo mirrors the store's (address, address_type) uniqueness.
type fakeContactRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]*contact.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{rows: make(map[string]*contact.Contact)}
}

func (f *fakeContactRepo) FindByAddress(ctx context.Context, address string, addressType contact.AddressType) (*contact.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.rows[address+"|"+string(addressType)]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "contact not found", nil, "test-contact-not-found")
}

func (f *fakeContactRepo) Create(ctx context.Context, c *contact.Contact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := c.Address + "|" + string(c.AddressType)
	if _, ok := f.rows[k]; ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "contact already exists", nil, "test-contact-conflict")
	}
	f.nextID++
	c.ID = f.nextID
	copied := *c
	f.rows[k] = &copied
	return nil
}

func (f *fakeContactRepo) PromoteCustomerOwned(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.ID == id {
			c.IsCustomerOwned = true
			return nil
		}
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "contact not found", nil, "test-contact-not-found")
}

func newResolver() conversation.Resolver {
	contacts := contact.NewResolver(newFakeContactRepo(), zerolog.Nop())
	return conversation.NewResolver(newFakeConversationRepo(), contacts, zerolog.Nop())
}

func TestResolveOrCreate_SamePairSameConversation(t *testing.T) {
	resolver := newResolver()
	ctx := context.Background()

	first, err := resolver.ResolveOrCreate(ctx, "+12016661234", "+18045551234")
	require.NoError(t, err)

	second, err := resolver.ResolveOrCreate(ctx, "+12016661234", "+18045551234")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveOrCreate_DistinctPairsDistinctConversations(t *testing.T) {
	resolver := newResolver()
	ctx := context.Background()

	ab, err := resolver.ResolveOrCreate(ctx, "+12016661234", "+18045551234")
	require.NoError(t, err)
	ac, err := resolver.ResolveOrCreate(ctx, "+12016661234", "+15125550000")
	require.NoError(t, err)
	bc, err := resolver.ResolveOrCreate(ctx, "+18045551234", "+15125550000")
	require.NoError(t, err)

	assert.NotEqual(t, ab, ac)
	assert.NotEqual(t, ab, bc)
	assert.NotEqual(t, ac, bc)
}

func TestResolveOrCreate_ChannelDoesNotSplitThread(t *testing.T) {
	// The same address pair resolves to one thread regardless of which
	// channel carried the message; conversations are pair-scoped.
	resolver := newResolver()
	ctx := context.Background()

	first, err := resolver.ResolveOrCreate(ctx, "user@usehatchapp.com", "contact@gmail.com")
	require.NoError(t, err)
	second, err := resolver.ResolveOrCreate(ctx, "user@usehatchapp.com", "contact@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveOrCreate_SelfPairRejected(t *testing.T) {
	resolver := newResolver()

	_, err := resolver.ResolveOrCreate(context.Background(), "+12016661234", "+12016661234")
	require.Error(t, err)

	var platformErr *platformerrors.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, platformerrors.ErrorTypeValidation, platformErr.GetErrorType())
}

func TestResolveOrCreate_ConcurrentFirstContactSingleWinner(t *testing.T) {
	resolver := newResolver()

	const workers = 20
	ids := make(chan uint, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := resolver.ResolveOrCreate(context.Background(), "+12016661234", "+18045551234")
			if err != nil {
				t.Errorf("ResolveOrCreate() error = %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 1, "concurrent first contact must yield exactly one conversation")
}
