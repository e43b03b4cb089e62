package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "loanmatch.v1.LoanMatchService"

// ListLendersRequest is the empty request of ListLenders.
type ListLendersRequest struct{}

// LoanMatchServiceServer is the server API for LoanMatchService.
type LoanMatchServiceServer interface {
	ComputeScore(context.Context, *dto.ApplicantRequest) (*dto.ScoreResponse, error)
	MatchLenders(context.Context, *dto.ApplicantRequest) (*dto.MatchListResponse, error)
	BuildSchedule(context.Context, *dto.ScheduleRequest) (*dto.ScheduleResponse, error)
	CheckWarnings(context.Context, *dto.ApplicantRequest) (*dto.WarningsResponse, error)
	Evaluate(context.Context, *dto.ApplicantRequest) (*dto.EvaluationResponse, error)
	ListLenders(context.Context, *ListLendersRequest) (*dto.PanelResponse, error)
}

// UnimplementedLoanMatchServiceServer answers Unimplemented for every method.
type UnimplementedLoanMatchServiceServer struct{}

func (UnimplementedLoanMatchServiceServer) ComputeScore(context.Context, *dto.ApplicantRequest) (*dto.ScoreResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ComputeScore not implemented")
}
func (UnimplementedLoanMatchServiceServer) MatchLenders(context.Context, *dto.ApplicantRequest) (*dto.MatchListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MatchLenders not implemented")
}
func (UnimplementedLoanMatchServiceServer) BuildSchedule(context.Context, *dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BuildSchedule not implemented")
}
func (UnimplementedLoanMatchServiceServer) CheckWarnings(context.Context, *dto.ApplicantRequest) (*dto.WarningsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckWarnings not implemented")
}
func (UnimplementedLoanMatchServiceServer) Evaluate(context.Context, *dto.ApplicantRequest) (*dto.EvaluationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Evaluate not implemented")
}
func (UnimplementedLoanMatchServiceServer) ListLenders(context.Context, *ListLendersRequest) (*dto.PanelResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListLenders not implemented")
}

// RegisterLoanMatchServiceServer registers srv with s.
func RegisterLoanMatchServiceServer(s grpclib.ServiceRegistrar, srv LoanMatchServiceServer) {
	s.RegisterService(&loanMatchServiceDesc, srv)
}

var loanMatchServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LoanMatchServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ComputeScore", Handler: unary("ComputeScore", LoanMatchServiceServer.ComputeScore)},
		{MethodName: "MatchLenders", Handler: unary("MatchLenders", LoanMatchServiceServer.MatchLenders)},
		{MethodName: "BuildSchedule", Handler: unary("BuildSchedule", LoanMatchServiceServer.BuildSchedule)},
		{MethodName: "CheckWarnings", Handler: unary("CheckWarnings", LoanMatchServiceServer.CheckWarnings)},
		{MethodName: "Evaluate", Handler: unary("Evaluate", LoanMatchServiceServer.Evaluate)},
		{MethodName: "ListLenders", Handler: unary("ListLenders", LoanMatchServiceServer.ListLenders)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "loanmatch/v1/loanmatch.proto",
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req, Resp any](
	method string,
	call func(LoanMatchServiceServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LoanMatchServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LoanMatchServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// LoanMatchClient calls LoanMatchService using the JSON codec.
type LoanMatchClient struct {
	cc grpclib.ClientConnInterface
}

// NewLoanMatchClient returns a client over cc.
func NewLoanMatchClient(cc grpclib.ClientConnInterface) *LoanMatchClient {
	return &LoanMatchClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpclib.ClientConnInterface, method string, in any, opts ...grpclib.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LoanMatchClient) ComputeScore(ctx context.Context, in *dto.ApplicantRequest, opts ...grpclib.CallOption) (*dto.ScoreResponse, error) {
	return invoke[dto.ScoreResponse](ctx, c.cc, "ComputeScore", in, opts...)
}

func (c *LoanMatchClient) MatchLenders(ctx context.Context, in *dto.ApplicantRequest, opts ...grpclib.CallOption) (*dto.MatchListResponse, error) {
	return invoke[dto.MatchListResponse](ctx, c.cc, "MatchLenders", in, opts...)
}

func (c *LoanMatchClient) BuildSchedule(ctx context.Context, in *dto.ScheduleRequest, opts ...grpclib.CallOption) (*dto.ScheduleResponse, error) {
	return invoke[dto.ScheduleResponse](ctx, c.cc, "BuildSchedule", in, opts...)
}

func (c *LoanMatchClient) CheckWarnings(ctx context.Context, in *dto.ApplicantRequest, opts ...grpclib.CallOption) (*dto.WarningsResponse, error) {
	return invoke[dto.WarningsResponse](ctx, c.cc, "CheckWarnings", in, opts...)
}

func (c *LoanMatchClient) Evaluate(ctx context.Context, in *dto.ApplicantRequest, opts ...grpclib.CallOption) (*dto.EvaluationResponse, error) {
	return invoke[dto.EvaluationResponse](ctx, c.cc, "Evaluate", in, opts...)
}

func (c *LoanMatchClient) ListLenders(ctx context.Context, opts ...grpclib.CallOption) (*dto.PanelResponse, error) {
	return invoke[dto.PanelResponse](ctx, c.cc, "ListLenders", &ListLendersRequest{}, opts...)
}
