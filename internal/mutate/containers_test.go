package mutate

import (
	"testing"

	"chatweaver/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLink_AppendsAndAllowsDuplicates(t *testing.T) {
	s := fixture()

	s2, err := AddLink(s, "ws-1", "chat-a", "node-3", "node-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"node-1"}, node(t, s2, "ws-1", "chat-a", "node-3").GoesTo)

	s3, err := AddLink(s2, "ws-1", "chat-a", "node-3", "node-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"node-1", "node-1"}, node(t, s3, "ws-1", "chat-a", "node-3").GoesTo)
	assert.Empty(t, node(t, s, "ws-1", "chat-a", "node-3").GoesTo)
}

func TestAddLink_RejectsSelfLink(t *testing.T) {
	s := fixture()
	out, err := AddLink(s, "ws-1", "chat-a", "node-2", "node-2")
	assert.True(t, IsValidation(err))
	assert.Equal(t, s, out)
}

func TestRemoveLink_RemovesFirstOccurrence(t *testing.T) {
	s := fixture()
	s, err := AddLink(s, "ws-1", "chat-a", "node-1", "node-2")
	require.NoError(t, err)
	require.Equal(t, []string{"node-2", "node-3", "node-2"}, node(t, s, "ws-1", "chat-a", "node-1").GoesTo)

	s2, err := RemoveLink(s, "ws-1", "chat-a", "node-1", "node-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"node-3", "node-2"}, node(t, s2, "ws-1", "chat-a", "node-1").GoesTo)
	assert.Equal(t, []string{"node-2", "node-3", "node-2"}, node(t, s, "ws-1", "chat-a", "node-1").GoesTo)
}

func TestDeleteCharacter_CascadesWithinWorkspaceOnly(t *testing.T) {
	s := fixture()
	s2, err := DeleteCharacter(s, "ws-1", "char-ann")
	require.NoError(t, err)

	ws := s2[0]
	require.Len(t, ws.Characters, 1)
	assert.Equal(t, "char-bob", ws.Characters[0].ID)
	for _, c := range ws.Chats {
		for _, n := range c.Nodes {
			assert.NotEqual(t, "char-ann", n.CharacterID(), "node %s/%s still references deleted character", c.ID, n.ID)
		}
	}
	assert.Equal(t, "char-bob", node(t, s2, "ws-1", "chat-a", "node-2").CharacterID())

	// Other workspace and the input are untouched.
	assert.Equal(t, "char-ann", node(t, s2, "ws-2", "chat-a", "node-1").CharacterID())
	assert.Equal(t, "char-ann", node(t, s, "ws-1", "chat-a", "node-1").CharacterID())
	assert.Equal(t, "char-ann", node(t, s, "ws-1", "chat-b", "node-b1").CharacterID())
}

func TestDeleteChatAndWorkspace(t *testing.T) {
	s := fixture()

	s2, err := DeleteChat(s, "ws-1", "chat-a")
	require.NoError(t, err)
	require.Len(t, s2[0].Chats, 1)
	assert.Equal(t, "chat-b", s2[0].Chats[0].ID)
	assert.Len(t, s[0].Chats, 2)

	s3, err := DeleteWorkspace(s2, "ws-1")
	require.NoError(t, err)
	require.Len(t, s3, 1)
	assert.Equal(t, "ws-2", s3[0].ID)
	assert.Len(t, s2, 2)
}

func TestAddAndRenameContainers(t *testing.T) {
	s := fixture()

	s, wsID := AddWorkspace(s)
	require.Len(t, s, 3)
	ws, ok := s.Workspace(wsID)
	require.True(t, ok)
	require.Len(t, ws.Chats, 1)
	require.Len(t, ws.Chats[0].Nodes, 1)

	s, chatID, err := AddChat(s, wsID)
	require.NoError(t, err)
	s, charID, err := AddCharacter(s, wsID)
	require.NoError(t, err)

	s, err = RenameWorkspace(s, wsID, "Quest")
	require.NoError(t, err)
	s, err = RenameChat(s, wsID, chatID, "Intro")
	require.NoError(t, err)
	s, err = RenameCharacter(s, wsID, charID, "Mira")
	require.NoError(t, err)

	ws, _ = s.Workspace(wsID)
	assert.Equal(t, "Quest", ws.Name)
	chat, ok := ws.Chat(chatID)
	require.True(t, ok)
	assert.Equal(t, "Intro", chat.Name)
	assert.Len(t, chat.Nodes, 1)
	ch, ok := ws.Character(charID)
	require.True(t, ok)
	assert.Equal(t, "Mira", ch.Name)
}

func TestImportWorkspace(t *testing.T) {
	s := fixture()
	exported := s[0].Clone()

	s2, id, err := ImportWorkspace(s, exported)
	require.NoError(t, err)
	require.Len(t, s2, 3)
	assert.NotEqual(t, "ws-1", id, "colliding workspace id must be replaced")
	imported, ok := s2.Workspace(id)
	require.True(t, ok)
	assert.Equal(t, exported.Chats, imported.Chats)

	fresh := model.NewWorkspace()
	s3, id3, err := ImportWorkspace(s, fresh)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, id3)
	assert.Len(t, s3, 3)

	noID := model.Workspace{Chats: []model.Chat{model.NewChat()}}
	_, _, err = ImportWorkspace(s, noID)
	assert.True(t, IsValidation(err))

	hollow := model.Workspace{ID: "ws-h", Chats: []model.Chat{{ID: "c"}}}
	_, _, err = ImportWorkspace(s, hollow)
	assert.True(t, IsValidation(err))

	// A workspace whose last chat was deleted still imports.
	bare := model.Workspace{ID: "ws-bare", Characters: []model.Character{}, Chats: []model.Chat{}}
	s4, id4, err := ImportWorkspace(s, bare)
	require.NoError(t, err)
	assert.Equal(t, "ws-bare", id4)
	assert.Len(t, s4, 3)
}
