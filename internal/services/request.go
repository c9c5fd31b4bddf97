package services

import (
	"context"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"insurance-system/internal/dto"
	"insurance-system/internal/entities"
	"insurance-system/internal/repositories"
	"insurance-system/pkg/config"
	"insurance-system/pkg/constants"
	apperrors "insurance-system/pkg/errors"
	"insurance-system/pkg/filestorage"
	"insurance-system/pkg/spreadsheet"
	"insurance-system/pkg/types"
	"insurance-system/pkg/utils"
)

const uploadContext = "insurance_request"

type RequestService struct {
	storage     *pgxpool.Pool
	requestRepo repositories.RequestRepositoryInterface
	branchRepo  repositories.BranchRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	extractor   *FieldExtractor
	letters     *LetterService
	logger      *zap.Logger
}

func NewRequestService(
	storage *pgxpool.Pool,
	requestRepo repositories.RequestRepositoryInterface,
	branchRepo repositories.BranchRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	extractor *FieldExtractor,
	letters *LetterService,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		storage:     storage,
		requestRepo: requestRepo,
		branchRepo:  branchRepo,
		fileStorage: fileStorage,
		extractor:   extractor,
		letters:     letters,
		logger:      logger,
	}
}

// CreateFromUpload принимает бланк заявки, сохраняет файл, извлекает поля
// и заводит заявку. Книга открывается только на время извлечения.
func (s *RequestService) CreateFromUpload(
	ctx context.Context,
	fileHeader *multipart.FileHeader,
	d dto.CreateRequestDTO,
	userID uint64,
) (*dto.RequestDTO, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err)
	}
	defer src.Close()

	if err := utils.ValidateFile(fileHeader, src, uploadContext); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	savedPath, err := s.fileStorage.Save(src, fileHeader.Filename, config.UploadContexts[uploadContext].PathPrefix)
	if err != nil {
		s.logger.Error("ошибка сохранения файла заявки", zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка сохранения файла", err)
	}

	fields, err := s.extractFromFile(savedPath, EntityType(d.EntityType))
	if err != nil {
		// Нечитаемый файл не храним.
		if delErr := s.fileStorage.Delete(savedPath); delErr != nil {
			s.logger.Warn("не удалось удалить нечитаемый файл", zap.String("path", savedPath), zap.Error(delErr))
		}
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			"Файл повреждён или не является таблицей Excel", err)
	}

	request := entities.Request{
		DfaNumber:          fields.DfaNumber,
		BranchName:         fields.Branch,
		BranchID:           s.resolveBranch(ctx, fields.Branch),
		ClientName:         fields.ClientName,
		INN:                fields.INN,
		EntityType:         d.EntityType,
		InsuranceType:      fields.InsuranceType,
		InsurancePeriod:    fields.InsurancePeriod,
		LeasingSubjectInfo: fields.LeasingSubjectInfo,
		HasFranchise:       fields.HasFranchise,
		HasInstallment:     fields.HasInstallment,
		HasAutostart:       fields.HasAutostart,
		HasCascoCE:         fields.HasCascoCE,
		FilePath:           savedPath,
		Status:             constants.RequestStatusNew,
		CreatedByID:        userID,
	}
	if d.Comment != "" {
		request.Comment = null.StringFrom(d.Comment)
	}

	var newID uint64
	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		newID, err = s.requestRepo.CreateRequest(ctx, tx, request)
		return err
	})
	if err != nil {
		s.logger.Error("ошибка создания заявки", zap.Error(err))
		return nil, err
	}

	created, err := s.requestRepo.FindRequest(ctx, newID)
	if err != nil {
		return nil, err
	}

	res := dto.NewRequestDTO(*created)
	return &res, nil
}

// extractFromFile открывает сохранённую книгу, извлекает поля и сразу
// закрывает файл, в том числе на пути с ошибкой открытия.
func (s *RequestService) extractFromFile(savedPath string, entity EntityType) (ExtractedFields, error) {
	wb, err := spreadsheet.OpenWorkbook(s.fileStorage.FullPath(savedPath))
	if err != nil {
		return ExtractedFields{}, err
	}
	defer wb.Close()

	return s.extractor.Extract(wb.Sheet(), entity), nil
}

// resolveBranch подбирает филиал из справочника по имени из бланка.
// Незнакомое имя не ошибка: заявка сохраняется без привязки.
func (s *RequestService) resolveBranch(ctx context.Context, name string) null.Uint64 {
	if name == "" {
		return null.Uint64{}
	}
	branch, err := s.branchRepo.FindByName(ctx, name)
	if err != nil {
		s.logger.Warn("филиал из бланка не найден в справочнике", zap.String("branch", name))
		return null.Uint64{}
	}
	return null.Uint64From(branch.ID)
}

func (s *RequestService) GetRequests(ctx context.Context, filter types.Filter) ([]dto.RequestDTO, uint64, error) {
	requests, total, err := s.requestRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.RequestDTO, 0, len(requests))
	for _, r := range requests {
		result = append(result, dto.NewRequestDTO(r))
	}
	return result, total, nil
}

func (s *RequestService) FindRequest(ctx context.Context, id uint64) (*dto.RequestDTO, error) {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewRequestDTO(*request)
	return &res, nil
}

func (s *RequestService) UpdateRequest(ctx context.Context, id uint64, d dto.UpdateRequestDTO) (*dto.RequestDTO, error) {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.Status != nil {
		request.Status = *d.Status
	}
	if d.Comment != nil {
		request.Comment = null.StringFrom(*d.Comment)
	}
	if d.DateFrom != nil {
		t, err := time.Parse("2006-01-02", *d.DateFrom)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Некорректная дата начала периода")
		}
		request.DateFrom = null.TimeFrom(t)
	}
	if d.DateTo != nil {
		t, err := time.Parse("2006-01-02", *d.DateTo)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Некорректная дата окончания периода")
		}
		request.DateTo = null.TimeFrom(t)
	}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		return s.requestRepo.UpdateRequest(ctx, tx, id, *request)
	})
	if err != nil {
		return nil, err
	}

	return s.FindRequest(ctx, id)
}

// GetRequestLetter возвращает текст письма страховщикам по заявке.
func (s *RequestService) GetRequestLetter(ctx context.Context, id uint64) (string, error) {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return "", err
	}
	return s.letters.RenderRequestLetter(*request)
}

func (s *RequestService) DeleteRequest(ctx context.Context, id uint64) error {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requestRepo.DeleteRequest(ctx, id); err != nil {
		return err
	}

	if err := s.fileStorage.Delete(request.FilePath); err != nil {
		s.logger.Warn("не удалось удалить файл удалённой заявки",
			zap.String("path", request.FilePath), zap.Error(err))
	}
	return nil
}
