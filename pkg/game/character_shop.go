package game

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/decker502/brickdigger/pkg/config"
	"github.com/decker502/brickdigger/pkg/logger"
)

// 角色存档键
const (
	KeySelectedCharacter  = "SelectedCharacter"
	KeyUnlockedCharacters = "UnlockedCharacters"
)

// ShopAction 商店操作按钮当前的含义
type ShopAction int

const (
	ActionBuy      ShopAction = iota // 未解锁：购买
	ActionEquip                      // 已解锁未装备：装备
	ActionSelected                   // 已装备：无操作
)

func (a ShopAction) String() string {
	switch a {
	case ActionBuy:
		return "BUY"
	case ActionEquip:
		return "EQUIP"
	case ActionSelected:
		return "SELECTED"
	default:
		return "unknown"
	}
}

// CharacterShop 角色商店
// 负责浏览、购买和装备角色，解锁与装备状态保存在 Prefs 中
//
// 角色编号从 1 开始，起始角色永远解锁。
type CharacterShop struct {
	prefs  *Prefs
	wallet Wallet
	log    logrus.FieldLogger

	count    int
	price    int
	starting int

	unlocked map[int]bool
	selected int
	current  int // 当前浏览的角色
}

// NewCharacterShop 创建角色商店并从 Prefs 加载解锁进度
//
// 参数：
//   - rules: 游戏规则（为 nil 时使用默认规则）
//   - prefs: 偏好存储
//   - wallet: 金币账户
//   - log: 日志器（可为 nil）
func NewCharacterShop(rules *config.GameRules, prefs *Prefs, wallet Wallet, log logrus.FieldLogger) *CharacterShop {
	if rules == nil {
		rules = config.DefaultGameRules()
	}
	s := &CharacterShop{
		prefs:    prefs,
		wallet:   wallet,
		log:      logger.Component(log, "CharacterShop"),
		count:    rules.Economy.CharacterCount,
		price:    rules.Economy.CharacterPrice,
		starting: rules.Economy.StartingCharacter,
	}
	s.Load()
	return s
}

// Load 从 Prefs 读取已解锁和已装备的角色
// 无法解析或越界的编号被忽略
func (s *CharacterShop) Load() {
	s.unlocked = map[int]bool{s.starting: true}
	for _, part := range strings.Split(s.prefs.GetString(KeyUnlockedCharacters, strconv.Itoa(s.starting)), ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || !s.valid(idx) {
			continue
		}
		s.unlocked[idx] = true
	}

	s.selected = s.prefs.GetInt(KeySelectedCharacter, s.starting)
	if !s.unlocked[s.selected] {
		s.selected = s.starting
	}
	s.current = s.selected

	s.log.WithFields(logrus.Fields{
		"selected": s.selected,
		"unlocked": len(s.unlocked),
	}).Debug("characters loaded")
}

// save 写入 Prefs 并持久化，解锁列表按编号升序逗号连接
func (s *CharacterShop) save() error {
	s.prefs.SetInt(KeySelectedCharacter, s.selected)
	s.prefs.SetString(KeyUnlockedCharacters, joinInts(s.UnlockedCharacters()))
	if err := s.prefs.Save(); err != nil {
		return fmt.Errorf("failed to save characters: %w", err)
	}
	return nil
}

// Next 浏览下一个角色（末尾回到第一个）
func (s *CharacterShop) Next() int {
	s.current++
	if s.current > s.count {
		s.current = 1
	}
	return s.current
}

// Prev 浏览上一个角色（开头回到最后一个）
func (s *CharacterShop) Prev() int {
	s.current--
	if s.current < 1 {
		s.current = s.count
	}
	return s.current
}

// Action 返回当前浏览角色对应的操作
func (s *CharacterShop) Action() ShopAction {
	switch {
	case !s.unlocked[s.current]:
		return ActionBuy
	case s.current != s.selected:
		return ActionEquip
	default:
		return ActionSelected
	}
}

// CanAfford 金币是否足够购买角色
func (s *CharacterShop) CanAfford() bool {
	return s.wallet.Coins() >= s.price
}

// Activate 执行当前浏览角色的操作（购买或装备）
//
// 返回：
//   - ShopAction: 执行后当前角色的操作状态
//   - bool: 是否发生了购买或装备
func (s *CharacterShop) Activate() (ShopAction, bool) {
	switch s.Action() {
	case ActionBuy:
		if !s.wallet.SpendCoins(s.price) {
			s.log.WithFields(logrus.Fields{"character": s.current, "coins": s.wallet.Coins()}).Debug("not enough coins")
			return ActionBuy, false
		}
		s.unlocked[s.current] = true
		s.log.WithFields(logrus.Fields{"character": s.current, "price": s.price}).Info("character purchased")
	case ActionEquip:
		s.selected = s.current
		s.log.WithField("character", s.selected).Info("character equipped")
	default:
		return ActionSelected, false
	}

	if err := s.save(); err != nil {
		s.log.WithError(err).Warn("failed to persist character shop")
	}
	return s.Action(), true
}

// Current 返回当前浏览的角色编号
func (s *CharacterShop) Current() int { return s.current }

// Selected 返回已装备的角色编号
func (s *CharacterShop) Selected() int { return s.selected }

// Price 返回角色价格
func (s *CharacterShop) Price() int { return s.price }

// Count 返回角色数量
func (s *CharacterShop) Count() int { return s.count }

// IsUnlocked 检查角色是否已解锁
func (s *CharacterShop) IsUnlocked(idx int) bool { return s.unlocked[idx] }

// UnlockedCharacters 返回已解锁角色编号（升序）
func (s *CharacterShop) UnlockedCharacters() []int {
	ids := make([]int, 0, len(s.unlocked))
	for idx := range s.unlocked {
		ids = append(ids, idx)
	}
	slices.Sort(ids)
	return ids
}

// CharacterName 返回角色显示名
func CharacterName(idx int) string {
	return fmt.Sprintf("Character %d", idx)
}

func (s *CharacterShop) valid(idx int) bool {
	return idx >= 1 && idx <= s.count
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
