package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"devconnect_server/internal/dao/mysql/repository"
	myredis "devconnect_server/internal/dao/redis"
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/errorx"

	"gorm.io/gorm"
)

// ==================== 内存实现 ====================

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*model.UserInfo
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	u, ok := f.users[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	result := make([]model.UserInfo, 0, len(uuids))
	for _, id := range uuids {
		if u, ok := f.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// fakeMessageRepo 内存消息仓库，按创建顺序保存消息
type fakeMessageRepo struct {
	repository.MessageRepository
	msgs []*model.Message
}

func (f *fakeMessageRepo) Create(msg *model.Message) error {
	cp := *msg
	f.msgs = append(f.msgs, &cp)
	return nil
}

func (f *fakeMessageRepo) FindByUuid(uuid int64) (*model.Message, error) {
	for _, m := range f.msgs {
		if m.Uuid == uuid {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "消息不存在")
}

func paginate(msgs []model.Message, skip, take int) []model.Message {
	if skip >= len(msgs) {
		return nil
	}
	end := skip + take
	if end > len(msgs) {
		end = len(msgs)
	}
	return msgs[skip:end]
}

func (f *fakeMessageRepo) FindDirectPage(userA, userB string, skip, take int) ([]model.Message, error) {
	var matched []model.Message
	for _, m := range f.msgs {
		if m.IsGroup {
			continue
		}
		if (m.SenderId == userA && m.RecipientId == userB) ||
			(m.SenderId == userB && m.RecipientId == userA) {
			matched = append(matched, *m)
		}
	}
	// 插入顺序即时间顺序，整体翻转模拟倒序查询
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return paginate(matched, skip, take), nil
}

func (f *fakeMessageRepo) FindGroupPage(groupUuid string, skip, take int) ([]model.Message, error) {
	var matched []model.Message
	for _, m := range f.msgs {
		if m.IsGroup && m.GroupUuid == groupUuid {
			matched = append(matched, *m)
		}
	}
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	return paginate(matched, skip, take), nil
}

func (f *fakeMessageRepo) FindDirectPartners(userId string) ([]string, error) {
	seen := make(map[string]struct{})
	var partners []string
	for _, m := range f.msgs {
		if m.IsGroup {
			continue
		}
		var partner string
		switch userId {
		case m.SenderId:
			partner = m.RecipientId
		case m.RecipientId:
			partner = m.SenderId
		default:
			continue
		}
		if _, ok := seen[partner]; !ok {
			seen[partner] = struct{}{}
			partners = append(partners, partner)
		}
	}
	return partners, nil
}

func (f *fakeMessageRepo) FindLastDirect(userA, userB string) (*model.Message, error) {
	for i := len(f.msgs) - 1; i >= 0; i-- {
		m := f.msgs[i]
		if m.IsGroup {
			continue
		}
		if (m.SenderId == userA && m.RecipientId == userB) ||
			(m.SenderId == userB && m.RecipientId == userA) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "消息不存在")
}

func (f *fakeMessageRepo) CountUnreadDirectFrom(senderId, recipientId string) (int64, error) {
	var count int64
	for _, m := range f.msgs {
		if !m.IsGroup && m.SenderId == senderId && m.RecipientId == recipientId && !m.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) CountUnreadGroup(groupUuid, excludeSender string) (int64, error) {
	var count int64
	for _, m := range f.msgs {
		if m.IsGroup && m.GroupUuid == groupUuid && m.SenderId != excludeSender && !m.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) MarkDirectRead(senderId, recipientId string) error {
	for _, m := range f.msgs {
		if !m.IsGroup && m.SenderId == senderId && m.RecipientId == recipientId {
			m.Read = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) MarkGroupRead(groupUuid, excludeSender string) error {
	for _, m := range f.msgs {
		if m.IsGroup && m.GroupUuid == groupUuid && m.SenderId != excludeSender {
			m.Read = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) MarkReadByUuid(uuid int64, recipientId string) (int64, error) {
	for _, m := range f.msgs {
		if m.Uuid == uuid && m.RecipientId == recipientId && !m.Read {
			m.Read = true
			return 1, nil
		}
	}
	return 0, nil
}

type fakeGroupRepo struct {
	repository.GroupRepository
	groups map[string]*model.GroupInfo
}

func (f *fakeGroupRepo) FindByUuid(uuid string) (*model.GroupInfo, error) {
	g, ok := f.groups[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGroupRepo) FindByUuids(uuids []string) ([]model.GroupInfo, error) {
	result := make([]model.GroupInfo, 0, len(uuids))
	for _, id := range uuids {
		if g, ok := f.groups[id]; ok {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (f *fakeGroupRepo) UpdateLastMessage(uuid string, messageUuid int64) error {
	g, ok := f.groups[uuid]
	if !ok {
		return errorx.New(errorx.CodeNotFound, "群组不存在")
	}
	g.LastMessageUuid = messageUuid
	g.UpdatedAt = time.Now()
	return nil
}

type fakeGroupMemberRepo struct {
	repository.GroupMemberRepository
	// members Key 为 groupUuid，Value 为成员 UUID 集合
	members map[string]map[string]struct{}
}

func (f *fakeGroupMemberRepo) Exists(groupUuid, userUuid string) (bool, error) {
	set, ok := f.members[groupUuid]
	if !ok {
		return false, nil
	}
	_, ok = set[userUuid]
	return ok, nil
}

func (f *fakeGroupMemberRepo) FindGroupUuidsByUser(userUuid string) ([]string, error) {
	var result []string
	for groupUuid, set := range f.members {
		if _, ok := set[userUuid]; ok {
			result = append(result, groupUuid)
		}
	}
	return result, nil
}

type noopCache struct {
	myredis.AsyncCacheService
}

func (noopCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (noopCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, key string) error { return nil }
func (noopCache) SubmitTask(action func())                     { action() }

// recordingNotifier 记录推送调用，供断言
type recordingNotifier struct {
	userIds []string
	events  []string
}

func (r *recordingNotifier) Publish(userId, event string, payload any) {
	r.userIds = append(r.userIds, userId)
	r.events = append(r.events, event)
}

type chatFixture struct {
	svc      *chatService
	users    *fakeUserRepo
	messages *fakeMessageRepo
	groups   *fakeGroupRepo
	members  *fakeGroupMemberRepo
	notifier *recordingNotifier
}

func newChatFixture(userIds ...string) *chatFixture {
	users := make(map[string]*model.UserInfo, len(userIds))
	for _, id := range userIds {
		users[id] = &model.UserInfo{Uuid: id, Nickname: "user-" + id}
	}
	f := &chatFixture{
		users:    &fakeUserRepo{users: users},
		messages: &fakeMessageRepo{},
		groups:   &fakeGroupRepo{groups: make(map[string]*model.GroupInfo)},
		members:  &fakeGroupMemberRepo{members: make(map[string]map[string]struct{})},
		notifier: &recordingNotifier{},
	}
	repos := &repository.Repositories{
		User:        f.users,
		Message:     f.messages,
		Group:       f.groups,
		GroupMember: f.members,
	}
	f.svc = NewChatService(repos, noopCache{}, f.notifier)
	return f
}

// seedDirect 直接写入一条单聊消息，绕过 SendMessage 以控制时间和已读状态
func (f *chatFixture) seedDirect(uuid int64, sender, recipient, content string, at time.Time, read bool) {
	f.messages.msgs = append(f.messages.msgs, &model.Message{
		Model:       gorm.Model{CreatedAt: at},
		Uuid:        uuid,
		SenderId:    sender,
		RecipientId: recipient,
		Content:     content,
		Type:        "text",
		Read:        read,
	})
}

func (f *chatFixture) seedGroup(groupUuid, name string, updatedAt time.Time, memberIds ...string) {
	f.groups.groups[groupUuid] = &model.GroupInfo{
		Model: gorm.Model{UpdatedAt: updatedAt},
		Uuid:  groupUuid,
		Name:  name,
	}
	set := make(map[string]struct{}, len(memberIds))
	for _, id := range memberIds {
		set[id] = struct{}{}
	}
	f.members.members[groupUuid] = set
}

func assertCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	var codeErr *errorx.CodeError
	if !errors.As(err, &codeErr) {
		t.Fatalf("expected CodeError, got %v", err)
	}
	if codeErr.Code != wantCode {
		t.Fatalf("expected code %d, got %d (%s)", wantCode, codeErr.Code, codeErr.Msg)
	}
}

// ==================== 测试用例 ====================

func TestListChatsMergeAndOrder(t *testing.T) {
	f := newChatFixture("U1", "U2", "U3")
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	// U2 会话最后活跃最早，群组居中，U3 会话最晚
	f.seedDirect(101, "U2", "U1", "hi", base, false)
	f.seedGroup("G_alpha", "go dev", base.Add(time.Hour), "U1", "U2")
	f.seedDirect(102, "U1", "U3", "hello", base.Add(2*time.Hour), false)

	threads, err := f.svc.ListChats("U1")
	if err != nil {
		t.Fatalf("list chats failed: %v", err)
	}
	if len(threads) != 3 {
		t.Fatalf("expected 3 threads, got %d", len(threads))
	}
	got := []string{threads[0].ChatId, threads[1].ChatId, threads[2].ChatId}
	want := []string{"U3", "G_alpha", "U2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", got, want)
		}
	}
	if !threads[1].IsGroup {
		t.Fatal("group thread should be marked as group")
	}
	// 未读数只统计对方发来的消息
	if threads[2].UnreadCount != 1 {
		t.Fatalf("expected 1 unread from U2, got %d", threads[2].UnreadCount)
	}
	if threads[0].UnreadCount != 0 {
		t.Fatalf("own message should not count as unread, got %d", threads[0].UnreadCount)
	}
}

func TestListChatsTieBreakByChatId(t *testing.T) {
	f := newChatFixture("U1", "U2", "U3")
	at := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	f.seedDirect(201, "U2", "U1", "a", at, true)
	f.seedDirect(202, "U3", "U1", "b", at, true)

	threads, err := f.svc.ListChats("U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(threads) != 2 || threads[0].ChatId != "U3" || threads[1].ChatId != "U2" {
		t.Fatalf("expected U3 before U2 on equal activity, got %+v", threads)
	}
}

func TestListChatsSkipsDeletedPartner(t *testing.T) {
	f := newChatFixture("U1")
	// U_gone 不在用户表中（已注销）
	f.seedDirect(301, "U_gone", "U1", "ghost", time.Now(), false)

	threads, err := f.svc.ListChats("U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(threads) != 0 {
		t.Fatalf("expected deleted partner to be skipped, got %+v", threads)
	}
}

func TestGetMessagesPagingAndOrder(t *testing.T) {
	f := newChatFixture("U1", "U2")
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		f.seedDirect(int64(400+i), "U2", "U1", fmt.Sprintf("m%d", i), base.Add(time.Duration(i)*time.Minute), false)
	}

	// 第一页取最新两条，页内时间正序
	msgs, err := f.svc.GetMessages("U1", "U2", false, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 2 || msgs[0].Content != "m3" || msgs[1].Content != "m4" {
		t.Fatalf("unexpected page 1: %+v", msgs)
	}

	// 第二页跳过第一页的行，取数口径为 limit*page
	msgs, err = f.svc.GetMessages("U1", "U2", false, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 rows on page 2, got %d", len(msgs))
	}
	if msgs[0].Content != "m0" || msgs[2].Content != "m2" {
		t.Fatalf("unexpected page 2 contents: %+v", msgs)
	}
}

func TestGetMessagesMarksOtherPartyRead(t *testing.T) {
	f := newChatFixture("U1", "U2")
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	f.seedDirect(501, "U2", "U1", "from partner", base, false)
	f.seedDirect(502, "U1", "U2", "from me", base.Add(time.Minute), false)

	msgs, err := f.svc.GetMessages("U1", "U2", false, 1, 50)
	if err != nil {
		t.Fatal(err)
	}
	// 响应中对方的消息同步为已读，自己的消息保持原状
	if !msgs[0].Read {
		t.Fatal("partner message should be read in response")
	}
	if msgs[1].Read {
		t.Fatal("own message should keep its read flag")
	}

	// 数据层的未读数清零
	unread, _ := f.messages.CountUnreadDirectFrom("U2", "U1")
	if unread != 0 {
		t.Fatalf("expected unread reset, got %d", unread)
	}
	// 对方视角自己发的消息不受影响
	unread, _ = f.messages.CountUnreadDirectFrom("U1", "U2")
	if unread != 1 {
		t.Fatalf("expected own message still unread for partner, got %d", unread)
	}
}

func TestGetMessagesGroupRequiresMembership(t *testing.T) {
	f := newChatFixture("U1", "U2")
	f.seedGroup("G1", "team", time.Now(), "U2")

	_, err := f.svc.GetMessages("U1", "G1", true, 1, 50)
	assertCode(t, err, errorx.CodeNotFound)
}

func TestSendMessageDirect(t *testing.T) {
	f := newChatFixture("U1", "U2")

	rsp, err := f.svc.SendMessage("U1", request.SendMessageRequest{
		Recipient: "U2",
		Content:   "  hello  ",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if rsp.Content != "hello" {
		t.Fatalf("content should be trimmed, got %q", rsp.Content)
	}
	if rsp.Uuid == 0 {
		t.Fatal("expected snowflake uuid")
	}
	if rsp.Type != "text" {
		t.Fatalf("expected default text type, got %s", rsp.Type)
	}
	if rsp.Sender == nil || rsp.Sender.Uuid != "U1" {
		t.Fatal("expected sender summary")
	}
	if rsp.Recipient == nil || rsp.Recipient.Uuid != "U2" {
		t.Fatal("expected recipient summary")
	}

	// 单聊推送给接收方
	if len(f.notifier.userIds) != 1 || f.notifier.userIds[0] != "U2" || f.notifier.events[0] != "newMessage" {
		t.Fatalf("unexpected push: %v %v", f.notifier.userIds, f.notifier.events)
	}
}

func TestSendMessageValidation(t *testing.T) {
	f := newChatFixture("U1", "U2")

	_, err := f.svc.SendMessage("U1", request.SendMessageRequest{Recipient: "U2", Content: "   "})
	assertCode(t, err, errorx.CodeInvalidParam)

	_, err = f.svc.SendMessage("U1", request.SendMessageRequest{Content: "hi"})
	assertCode(t, err, errorx.CodeInvalidParam)

	_, err = f.svc.SendMessage("U1", request.SendMessageRequest{Recipient: "U_missing", Content: "hi"})
	assertCode(t, err, errorx.CodeNotFound)

	_, err = f.svc.SendMessage("U1", request.SendMessageRequest{Recipient: "U2", Content: "hi", MessageType: "video"})
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestSendMessageGroup(t *testing.T) {
	f := newChatFixture("U1", "U2", "U3")
	f.seedGroup("G1", "team", time.Now().Add(-time.Hour), "U1", "U2")

	rsp, err := f.svc.SendMessage("U1", request.SendMessageRequest{
		IsGroup: true,
		GroupId: "G1",
		Content: "group hello",
	})
	if err != nil {
		t.Fatalf("group send failed: %v", err)
	}

	// 群组最新消息指针被刷新
	g := f.groups.groups["G1"]
	if g.LastMessageUuid != rsp.Uuid {
		t.Fatalf("expected last message pointer update, got %d", g.LastMessageUuid)
	}
	if time.Since(g.UpdatedAt) > time.Minute {
		t.Fatal("expected updated_at refresh")
	}

	// 群聊不走单聊推送
	if len(f.notifier.userIds) != 0 {
		t.Fatalf("group message should not push, got %v", f.notifier.userIds)
	}

	// 非群成员发送被拒绝
	_, err = f.svc.SendMessage("U3", request.SendMessageRequest{IsGroup: true, GroupId: "G1", Content: "hi"})
	assertCode(t, err, errorx.CodeForbidden)

	// 群组不存在
	_, err = f.svc.SendMessage("U1", request.SendMessageRequest{IsGroup: true, GroupId: "G_missing", Content: "hi"})
	assertCode(t, err, errorx.CodeNotFound)
}

func TestMarkRead(t *testing.T) {
	f := newChatFixture("U1", "U2")
	f.seedDirect(601, "U2", "U1", "hi", time.Now(), false)

	// 非接收方标记按未找到处理
	assertCode(t, f.svc.MarkRead("U2", 601), errorx.CodeNotFound)
	assertCode(t, f.svc.MarkRead("U1", 999), errorx.CodeNotFound)

	if err := f.svc.MarkRead("U1", 601); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	msg, _ := f.messages.FindByUuid(601)
	if !msg.Read {
		t.Fatal("message should be read")
	}

	// 已读消息再次标记按未找到处理，不会再次成功
	assertCode(t, f.svc.MarkRead("U1", 601), errorx.CodeNotFound)

	// 初始就是已读的消息同样按未找到处理
	f.seedDirect(602, "U2", "U1", "again", time.Now(), true)
	assertCode(t, f.svc.MarkRead("U1", 602), errorx.CodeNotFound)
}
