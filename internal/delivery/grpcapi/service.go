package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const SettlementAdminServiceName = "shvark.settlement.v1.SettlementAdminService"

// SettlementAdminServer is the back-office API. Requests and responses are
// google.protobuf.Struct documents with snake_case keys.
type SettlementAdminServer interface {
	CalculateCommission(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	PayCommission(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CancelCommission(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	SetCommissionRate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CreditWallet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	DebitWallet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	GetWallet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ApproveWithdrawal(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RejectWithdrawal(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CompleteWithdrawal(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	SettleMatured(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type adminCall func(srv SettlementAdminServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func adminMethod(name string, call adminCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SettlementAdminServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + SettlementAdminServiceName + "/" + name}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(SettlementAdminServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

var SettlementAdminServiceDesc = grpc.ServiceDesc{
	ServiceName: SettlementAdminServiceName,
	HandlerType: (*SettlementAdminServer)(nil),
	Methods: []grpc.MethodDesc{
		adminMethod("CalculateCommission", SettlementAdminServer.CalculateCommission),
		adminMethod("PayCommission", SettlementAdminServer.PayCommission),
		adminMethod("CancelCommission", SettlementAdminServer.CancelCommission),
		adminMethod("SetCommissionRate", SettlementAdminServer.SetCommissionRate),
		adminMethod("CreditWallet", SettlementAdminServer.CreditWallet),
		adminMethod("DebitWallet", SettlementAdminServer.DebitWallet),
		adminMethod("GetWallet", SettlementAdminServer.GetWallet),
		adminMethod("ApproveWithdrawal", SettlementAdminServer.ApproveWithdrawal),
		adminMethod("RejectWithdrawal", SettlementAdminServer.RejectWithdrawal),
		adminMethod("CompleteWithdrawal", SettlementAdminServer.CompleteWithdrawal),
		adminMethod("SettleMatured", SettlementAdminServer.SettleMatured),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "settlement_admin.proto",
}

func RegisterSettlementAdminServer(s grpc.ServiceRegistrar, srv SettlementAdminServer) {
	s.RegisterService(&SettlementAdminServiceDesc, srv)
}

// SettlementAdminClient calls the admin service over cc.
type SettlementAdminClient struct {
	cc grpc.ClientConnInterface
}

func NewSettlementAdminClient(cc grpc.ClientConnInterface) *SettlementAdminClient {
	return &SettlementAdminClient{cc: cc}
}

func (c *SettlementAdminClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+SettlementAdminServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
