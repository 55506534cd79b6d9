// Package transaction 事务端口
//
// 领域服务只依赖Manager接口，具体实现在infrastructure层：
// mysql实现通过context传递gorm事务，memory实现使用存储级互斥锁。
package transaction

import "context"

// Manager 事务管理器
// fn返回error时回滚，返回nil时提交
type Manager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Func 函数适配器，便于测试时直接执行fn
type Func func(ctx context.Context, fn func(ctx context.Context) error) error

// Transaction 实现Manager
func (f Func) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// Direct 不开启事务，直接执行fn
var Direct Manager = Func(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
