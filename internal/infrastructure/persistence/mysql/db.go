package mysql

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 2. debug模式打印SQL，其它模式只记录错误
// 3. 按配置自动迁移表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Error
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: time.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}
	return db, nil
}

// AutoMigrate 自动迁移表结构
// 只会创建表、添加字段和索引，不会删除现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&ReviewModel{},
	)
}

// 唯一索引名，冲突时据此判断是哪个字段重复
const (
	ukUsersEmail = "uk_users_email"
	ukUsersPhone = "uk_users_phone"
	ukBooksTitle = "uk_books_title"
	ukBooksISBN  = "uk_books_isbn"
)

// UserModel GORM用户模型
// domain/user.User不带GORM tag，Repository负责转换
type UserModel struct {
	ID        string    `gorm:"primaryKey;size:24"`
	Title     string    `gorm:"size:8;not null"`
	Name      string    `gorm:"size:100;not null"`
	Phone     string    `gorm:"uniqueIndex:uk_users_phone;size:20;not null"`
	Email     string    `gorm:"uniqueIndex:uk_users_email;size:100;not null"`
	Password  string    `gorm:"size:255;not null;comment:bcrypt哈希"`
	Street    string    `gorm:"size:200"`
	City      string    `gorm:"size:100"`
	Pincode   string    `gorm:"size:10"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 1. title、isbn唯一索引覆盖已删除的记录
// 2. 软删除使用is_deleted标记（不用gorm.DeletedAt，唯一性查询需要看到已删除的记录）
// 3. subcategory以逗号拼接存储，过滤时使用FIND_IN_SET
type BookModel struct {
	ID          string     `gorm:"primaryKey;size:24"`
	Title       string     `gorm:"uniqueIndex:uk_books_title;size:200;not null"`
	Excerpt     string     `gorm:"type:text;not null"`
	UserID      string     `gorm:"index;size:24;not null"`
	ISBN        string     `gorm:"column:isbn;uniqueIndex:uk_books_isbn;size:64;not null"` // 保存原始输入（含连字符、空格）
	Category    string     `gorm:"index;size:100;not null"`
	Subcategory string     `gorm:"size:500;not null"`
	ReleasedAt  string     `gorm:"size:10;not null"`
	Reviews     int        `gorm:"not null;default:0"`
	IsDeleted   bool       `gorm:"index;not null;default:false"`
	DeletedAt   *time.Time `gorm:"comment:软删除时间"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ReviewModel GORM评论模型
type ReviewModel struct {
	ID         string    `gorm:"primaryKey;size:24"`
	BookID     string    `gorm:"index;size:24;not null"`
	ReviewedBy string    `gorm:"size:100;not null"`
	Rating     int       `gorm:"type:tinyint;not null"`
	Review     string    `gorm:"type:text"`
	ReviewedAt time.Time `gorm:"not null"`
	IsDeleted  bool      `gorm:"index;not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

func joinSubcategory(subs []string) string {
	return strings.Join(subs, ",")
}

func splitSubcategory(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}
