package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"insurance-system/internal/dto"
	"insurance-system/internal/repositories"
)

const branchesCacheKey = "dictionaries:branches"
const branchesCacheTTL = time.Minute * 10

type BranchService struct {
	branchRepo repositories.BranchRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	logger     *zap.Logger
}

func NewBranchService(
	branchRepo repositories.BranchRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) *BranchService {
	return &BranchService{
		branchRepo: branchRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
	}
}

// GetBranches отдаёт справочник филиалов, по возможности из кеша.
func (s *BranchService) GetBranches(ctx context.Context) ([]dto.BranchDTO, error) {
	if cached, err := s.cacheRepo.Get(ctx, branchesCacheKey); err == nil && cached != "" {
		var result []dto.BranchDTO
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
		s.logger.Warn("битое значение в кеше справочника филиалов, перечитываем из БД")
	}

	branches, err := s.branchRepo.GetBranches(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.BranchDTO, 0, len(branches))
	for _, b := range branches {
		result = append(result, dto.NewBranchDTO(b))
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.cacheRepo.Set(ctx, branchesCacheKey, string(payload), branchesCacheTTL); err != nil {
			s.logger.Warn("не удалось записать справочник филиалов в кеш", zap.Error(err))
		}
	}

	return result, nil
}

func (s *BranchService) FindBranch(ctx context.Context, id uint64) (*dto.BranchDTO, error) {
	branch, err := s.branchRepo.FindBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewBranchDTO(*branch)
	return &res, nil
}
